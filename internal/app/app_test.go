package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknotes/internal/config"
)

func memoryConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = config.ModeDevelopment
	cfg.Server.CORSOrigin = "http://localhost:5173"
	cfg.Database.Driver = "memory"
	cfg.Auth.JWTSecret = "test"
	cfg.Auth.CookieName = "token"
	cfg.Email.DryRun = true
	return cfg
}

func TestNew_MemoryDriver(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := New(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer a.Close()

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/notes/{id}")

	w = httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNew_PreflightGetsCORSHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := New(context.Background(), memoryConfig())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/api/notes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestNew_BadDatabase(t *testing.T) {
	cfg := memoryConfig()
	cfg.Database.Driver = "sqlite"
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
