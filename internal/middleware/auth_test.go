package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknotes/internal/models"
)

type stubAuth struct {
	tokens map[string]*models.User
}

func (s stubAuth) Authenticate(_ context.Context, token string) (*models.User, error) {
	if u, ok := s.tokens[token]; ok {
		return u, nil
	}
	return nil, errors.New("bad token")
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.Any("/x", func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u.ID})
	})
	return r
}

func do(r http.Handler, method, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/x", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	auth := stubAuth{tokens: map[string]*models.User{"good": {ID: "u-1"}}}
	r := newRouter(AuthMiddleware(auth, "token"))

	w := do(r, http.MethodGet, "good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"u-1"}`, w.Body.String())

	for _, cookie := range []string{"", "forged"} {
		w = do(r, http.MethodGet, cookie)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Not authorized"}`, w.Body.String())
	}

	// preflight не требует cookie
	w = do(r, http.MethodOptions, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	auth := stubAuth{tokens: map[string]*models.User{"good": {ID: "u-1"}}}
	r := newRouter(OptionalAuth(auth, "token"))

	assert.JSONEq(t, `{"user":"u-1"}`, do(r, http.MethodGet, "good").Body.String())
	assert.JSONEq(t, `{"user":null}`, do(r, http.MethodGet, "forged").Body.String())
	assert.JSONEq(t, `{"user":null}`, do(r, http.MethodGet, "").Body.String())
}
