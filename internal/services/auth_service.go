package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"quicknotes/internal/models"
)

type AuthService interface {
	// ExternalLogin проверяет токен Google и находит или создаёт пользователя.
	ExternalLogin(ctx context.Context, externalToken string) (*models.User, bool, error)
	// Authenticate разрешает токен сессии в пользователя.
	Authenticate(ctx context.Context, sessionToken string) (*models.User, error)
}

type authService struct {
	users    UserService
	sessions SessionService
	identity IdentityVerifier
}

func NewAuthService(users UserService, sessions SessionService, identity IdentityVerifier) AuthService {
	return &authService{users: users, sessions: sessions, identity: identity}
}

func (s *authService) ExternalLogin(ctx context.Context, externalToken string) (*models.User, bool, error) {
	externalToken = strings.TrimSpace(externalToken)
	if externalToken == "" {
		return nil, false, invalid("Google token is required")
	}

	claim, err := s.identity.Verify(ctx, externalToken)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrExternalAuth, err)
	}

	email := normalizeEmail(claim.Email)
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		log.Printf("[auth][google] login user_id=%s", user.ID)
		return user, false, nil
	}

	return s.users.Provision(ctx, &models.User{
		Name:         displayName(claim.Name, email),
		Email:        email,
		Avatar:       models.Avatar{URL: claim.Picture},
		AuthProvider: models.ProviderGoogle,
		IsVerified:   true,
	})
}

func (s *authService) Authenticate(ctx context.Context, sessionToken string) (*models.User, error) {
	if sessionToken == "" {
		return nil, ErrUnauthenticated
	}
	userID, err := s.sessions.Parse(sessionToken)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: subject %s no longer exists", ErrUnauthenticated, userID)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
