package models

import "time"

type AuthProvider string

const (
	ProviderEmail  AuthProvider = "email"
	ProviderGoogle AuthProvider = "google"
)

// Avatar: ссылка на картинку профиля. PublicID заполнен только для загрузок
// в наше объектное хранилище.
type Avatar struct {
	PublicID string `json:"public_id,omitempty"`
	URL      string `json:"url,omitempty"`
}

type User struct {
	ID           string       `json:"_id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Avatar       Avatar       `json:"avatar"`
	AuthProvider AuthProvider `json:"authProvider"`
	IsVerified   bool         `json:"isVerified"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type RegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type VerifyOTPRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type GoogleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

type AvatarConfirmRequest struct {
	PublicID string `json:"public_id" binding:"required"`
}
