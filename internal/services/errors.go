package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrOTPNotFound     = errors.New("otp not found")
	ErrOTPInvalid      = errors.New("otp invalid")
	ErrOTPExpired      = errors.New("otp expired")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrExternalService = errors.New("external service error")
	ErrExternalAuth    = fmt.Errorf("%w: identity provider rejected token", ErrExternalService)
	ErrStorageDisabled = errors.New("avatar storage is not configured")
)

// ValidationError: ошибка пользовательского ввода; Message уходит клиенту как есть.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }
