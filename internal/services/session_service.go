package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL: срок жизни сессии, фиксирован.
const SessionTTL = 7 * 24 * time.Hour

type SessionService interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
	Parse(token string) (userID string, err error)
}

type sessionService struct {
	secret []byte
	now    func() time.Time
}

func NewSessionService(secret string) SessionService {
	return &sessionService{secret: []byte(secret), now: time.Now}
}

func (s *sessionService) Issue(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, errors.New("session: empty user id")
	}
	now := s.now()
	expiresAt := now.Add(SessionTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("session sign: %w", err)
	}
	return token, expiresAt, nil
}

// Parse не различает "просрочен" и "подделан": любая ошибка это ErrUnauthenticated.
func (s *sessionService) Parse(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// принимаем только HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrUnauthenticated)
	}
	return claims.Subject, nil
}
