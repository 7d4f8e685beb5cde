package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"quicknotes/internal/models"
	"quicknotes/internal/repositories"
)

type UserService interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// Provision создаёт пользователя; если email уже занят (гонка), возвращает существующего.
	Provision(ctx context.Context, user *models.User) (*models.User, bool, error)
	UpdateAvatar(ctx context.Context, id string, avatar models.Avatar) (*models.User, error)
	// MarkVerified ставит is_verified после успешной проверки кода.
	MarkVerified(ctx context.Context, id string) (*models.User, error)
}

type userService struct {
	repo     repositories.UserRepository
	notifier SignupNotifier
}

func NewUserService(repo repositories.UserRepository, notifier SignupNotifier) UserService {
	return &userService{repo: repo, notifier: notifier}
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

// GetUserByEmail возвращает (nil, nil), если пользователя нет.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Provision(ctx context.Context, user *models.User) (*models.User, bool, error) {
	user.Email = normalizeEmail(user.Email)
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.AuthProvider == "" {
		user.AuthProvider = models.ProviderEmail
	}

	err := s.repo.Create(ctx, user)
	if errors.Is(err, repositories.ErrAlreadyExists) {
		log.Printf("[user][provision] email=%q already registered, using existing record", user.Email)
		existing, getErr := s.repo.GetByEmail(ctx, user.Email)
		if getErr != nil {
			return nil, false, fmt.Errorf("load existing user: %w", getErr)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	log.Printf("[user][provision] created user_id=%s provider=%s", user.ID, user.AuthProvider)

	if s.notifier != nil {
		if err := s.notifier.NotifySignup(ctx, user); err != nil {
			// warn but do not fail creation
			log.Printf("[user][provision] warning: signup notification failed for user_id=%s: %v", user.ID, err)
		}
	}
	return user, true, nil
}

func (s *userService) UpdateAvatar(ctx context.Context, id string, avatar models.Avatar) (*models.User, error) {
	if err := s.repo.UpdateAvatar(ctx, id, avatar); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.GetUserByID(ctx, id)
}

func (s *userService) MarkVerified(ctx context.Context, id string) (*models.User, error) {
	if err := s.repo.VerifyUser(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.GetUserByID(ctx, id)
}

// displayName приводит имя от провайдера к ограничениям модели (2..50 рун).
func displayName(name, email string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		if at := strings.IndexByte(email, '@'); at > 0 {
			name = email[:at]
		}
	}
	if utf8.RuneCountInString(name) < 2 {
		name = email
	}
	if r := []rune(name); len(r) > 50 {
		name = string(r[:50])
	}
	return name
}
