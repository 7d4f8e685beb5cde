package services

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return invalid("Please provide a valid email")
	}
	return nil
}

// Длины считаются в рунах: validator для строк использует utf8.RuneCountInString.
func validateName(name string) error {
	if err := validate.Var(name, "min=2,max=50"); err != nil {
		return invalid("Name must be between 2 and 50 characters")
	}
	return nil
}

func validateNoteTitle(title string) error {
	if err := validate.Var(title, "min=1,max=100"); err != nil {
		return invalid("Title must be between 1 and 100 characters")
	}
	return nil
}

func validateNoteContent(content string) error {
	if err := validate.Var(content, "min=1,max=10000"); err != nil {
		return invalid("Content must be between 1 and 10000 characters")
	}
	return nil
}

func validateNoteColor(color string) error {
	if err := validate.Var(color, "max=32"); err != nil {
		return invalid("Color must be at most 32 characters")
	}
	return nil
}
