package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aigallery/internal/config"
	"aigallery/internal/handlers"
	"aigallery/internal/repository"
	"aigallery/internal/service"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		Environment: "test",
		HTTP:        config.HTTPConfig{Host: "127.0.0.1", Port: 0},
		Security:    config.SecurityConfig{JWTAccessSecret: "test-secret", SessionTTL: time.Hour},
	}
	logger := zerolog.New(io.Discard)

	users := repository.NewUserRepository()
	sessions := repository.NewSessionRepository()
	images := repository.NewImageRepository()
	interactions := repository.NewInteractionRepository()

	h := handlers.NewHandlerSet(
		logger,
		cfg,
		service.NewAuthService(users, sessions, cfg, logger),
		service.NewGalleryService(images, sessions, interactions, nil, logger),
		service.NewInteractionService(images, users, interactions, nil, logger),
		nil,
	)
	return NewHTTPServer(cfg, logger, h).Handler()
}

func TestServerRoutes(t *testing.T) {
	handler := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"health", http.MethodGet, "/api/healthz", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/api/healthz", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
		})
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "aigallery_http_request_duration_seconds")
}
