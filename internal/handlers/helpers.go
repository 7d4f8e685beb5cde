package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quicknotes/internal/authz"
	"quicknotes/internal/services"
)

const serverErrorMessage = "Server error"

// CookieSettings: атрибуты cookie сессии.
type CookieSettings struct {
	Name   string
	Secure bool // только в production
}

func (s CookieSettings) set(c *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(services.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clear перезаписывает cookie пустым уже истёкшим значением.
func (s CookieSettings) clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// respondError переводит ошибки сервисов в HTTP; внутренние причины только в лог.
func respondError(c *gin.Context, tag string, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": vErr.Message})
	case errors.Is(err, services.ErrOTPNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"message": "OTP not found or expired"})
	case errors.Is(err, services.ErrOTPInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
	case errors.Is(err, services.ErrOTPExpired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "OTP has expired"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, authz.ErrNotOwner), errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
	case errors.Is(err, services.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Avatar uploads are disabled"})
	case errors.Is(err, services.ErrExternalService):
		log.Printf("%s[external][err] %v", tag, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": serverErrorMessage})
	default:
		log.Printf("%s[err] %v", tag, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": serverErrorMessage})
	}
}
