package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"quicknotes/internal/models"
)

const userKey = "user"

// Authenticator разрешает токен сессии в пользователя.
type Authenticator interface {
	Authenticate(ctx context.Context, sessionToken string) (*models.User, error)
}

// AuthMiddleware: токен берём из cookie; причину отказа клиенту не раскрываем.
func AuthMiddleware(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// пропускаем preflight
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		user, err := resolve(c, auth, cookieName)
		if err != nil {
			log.Printf("[auth][guard] reject path=%s: %v", c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalAuth кладёт пользователя в контекст, если сессия валидна, но никогда не отказывает.
func OptionalAuth(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := resolve(c, auth, cookieName); err == nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

func resolve(c *gin.Context, auth Authenticator, cookieName string) (*models.User, error) {
	token, err := c.Cookie(cookieName)
	if err != nil {
		return nil, err
	}
	return auth.Authenticate(c.Request.Context(), token)
}

// CurrentUser возвращает пользователя, положенного AuthMiddleware/OptionalAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}
