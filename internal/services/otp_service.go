package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"quicknotes/internal/models"
	"quicknotes/internal/repositories"
	"quicknotes/internal/utils"
)

// OTPTTL: окно действия кода от момента создания записи.
const OTPTTL = 10 * time.Minute

type IssueResult struct {
	Email        string
	Name         string
	ExistingUser bool
	// Delivered=false: письмо не ушло, но запись с кодом сохранена.
	Delivered bool
}

type VerifyResult struct {
	User    *models.User
	Created bool
}

type OTPService struct {
	otps   repositories.OTPRepository
	users  UserService
	mailer EmailService

	// requireCodeForExisting закрывает вход без кода для зарегистрированных email.
	requireCodeForExisting bool
	hashCost               int
	now                    func() time.Time
	newCode                func() (string, error)
}

type OTPOption func(*OTPService)

func WithClock(now func() time.Time) OTPOption {
	return func(s *OTPService) { s.now = now }
}

func WithHashCost(cost int) OTPOption {
	return func(s *OTPService) { s.hashCost = cost }
}

func WithCodeForExistingUsers(required bool) OTPOption {
	return func(s *OTPService) { s.requireCodeForExisting = required }
}

func WithCodeGenerator(gen func() (string, error)) OTPOption {
	return func(s *OTPService) { s.newCode = gen }
}

func NewOTPService(otps repositories.OTPRepository, users UserService, mailer EmailService, opts ...OTPOption) *OTPService {
	s := &OTPService{
		otps:     otps,
		users:    users,
		mailer:   mailer,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
		newCode:  utils.NewOTPCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue: удаляет прежние коды для email, создаёт новый и отправляет письмо.
func (s *OTPService) Issue(ctx context.Context, name, email string) (*IssueResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" {
		return nil, invalid("Please provide name and email")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	code, err := s.newCode()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt generate: %w", err)
	}

	// Не транзакция: две параллельные выдачи могут оставить две записи,
	// Verify всё равно смотрит только на последнюю.
	if _, err := s.otps.DeleteByEmail(ctx, email); err != nil {
		return nil, err
	}
	rec := &models.OTP{Email: email, CodeHash: string(codeHash), CreatedAt: s.now()}
	if err := s.otps.Create(ctx, rec); err != nil {
		return nil, err
	}

	res := &IssueResult{Email: email, Name: name, Delivered: true}
	if existing != nil {
		res.ExistingUser = true
		res.Name = existing.Name
	}

	if err := s.mailer.SendOTPEmail(email, code); err != nil {
		log.Printf("[otp][issue] warning: failed to send otp email to %s: %v", email, err)
		res.Delivered = false
	}
	log.Printf("[otp][issue] ok email=%s existing=%v delivered=%v", email, res.ExistingUser, res.Delivered)
	return res, nil
}

// Verify проверяет последний код для email и создаёт пользователя.
// Для уже зарегистрированного email код по умолчанию не проверяется.
func (s *OTPService) Verify(ctx context.Context, name, email, code string) (*VerifyResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if name == "" || email == "" || code == "" {
		return nil, invalid("Please provide all fields")
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil && !s.requireCodeForExisting {
		log.Printf("[otp][verify] existing user login without code check user_id=%s", existing.ID)
		return &VerifyResult{User: existing}, nil
	}

	if existing == nil {
		if err := validateName(name); err != nil {
			return nil, err
		}
	}

	if err := s.checkCode(ctx, email, code); err != nil {
		return nil, err
	}

	if _, err := s.otps.DeleteByEmail(ctx, email); err != nil {
		return nil, err
	}

	if existing != nil {
		if !existing.IsVerified {
			if existing, err = s.users.MarkVerified(ctx, existing.ID); err != nil {
				return nil, err
			}
		}
		log.Printf("[otp][verify] ok existing user_id=%s", existing.ID)
		return &VerifyResult{User: existing}, nil
	}

	user, created, err := s.users.Provision(ctx, &models.User{
		Name:         name,
		Email:        email,
		AuthProvider: models.ProviderEmail,
		IsVerified:   true,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[otp][verify] ok user_id=%s created=%v", user.ID, created)
	return &VerifyResult{User: user, Created: created}, nil
}

func (s *OTPService) checkCode(ctx context.Context, email, code string) error {
	rec, err := s.otps.GetLatestByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrOTPNotFound
	}
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(code)); err != nil {
		return ErrOTPInvalid
	}
	if s.now().Sub(rec.CreatedAt) > OTPTTL {
		return ErrOTPExpired
	}
	return nil
}
