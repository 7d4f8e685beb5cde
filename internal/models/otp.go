package models

import "time"

// OTP: одна отправка кода на email. Храним только bcrypt-хэш кода.
// Несколько записей на один email допустимы, актуальна последняя по CreatedAt.
type OTP struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CodeHash  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
