package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"aigallery/internal/models"
)

type stubAuth struct{}

func (stubAuth) Authenticate(_ context.Context, token string) (models.Session, models.User, error) {
	if token != "good" {
		return models.Session{}, models.User{}, errors.New("bad token")
	}
	return models.Session{ID: "s1", UserID: "u1", View: models.ViewGallery}, models.User{ID: "u1", Username: "demo"}, nil
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID(), Recovery(zerolog.New(io.Discard)), Auth(stubAuth{}))
	engine.GET("/open", func(c *gin.Context) {
		session := CurrentSession(c)
		if session == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, session.UserID)
	})
	engine.GET("/closed", RequireLogin(), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.String(http.StatusOK, user.Username)
	})
	engine.GET("/panic", func(c *gin.Context) { panic("boom") })
	return engine
}

func do(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuth(t *testing.T) {
	engine := newEngine()

	tests := []struct {
		name   string
		path   string
		token  string
		status int
		body   string
	}{
		{"anonymous open", "/open", "", http.StatusOK, "anonymous"},
		{"authenticated open", "/open", "Bearer good", http.StatusOK, "u1"},
		{"stale token open", "/open", "Bearer nope", http.StatusOK, "anonymous"},
		{"wrong scheme open", "/open", "Basic abc", http.StatusOK, "anonymous"},
		{"empty bearer open", "/open", "Bearer ", http.StatusOK, "anonymous"},
		{"anonymous closed", "/closed", "", http.StatusUnauthorized, `{"error":"login_required"}`},
		{"stale token closed", "/closed", "Bearer nope", http.StatusUnauthorized, `{"error":"invalid_token"}`},
		{"wrong scheme closed", "/closed", "Basic abc", http.StatusUnauthorized, `{"error":"login_required"}`},
		{"authenticated closed", "/closed", "Bearer good", http.StatusOK, "demo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(engine, tt.path, tt.token)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestRequestIDAndRecovery(t *testing.T) {
	engine := newEngine()

	rec := do(engine, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(requestIDHeader))

	for _, bad := range []string{strings.Repeat("a", 65), "has space"} {
		req = httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set(requestIDHeader, bad)
		rec = httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.NotEqual(t, bad, rec.Header().Get(requestIDHeader))
		assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	}
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(CORS([]string{"https://gallery.example"}))
	engine.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://gallery.example")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://gallery.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))

	wildcard := gin.New()
	wildcard.Use(CORS([]string{"*"}))
	wildcard.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://any.example")
	rec = httptest.NewRecorder()
	wildcard.ServeHTTP(rec, req)
	assert.Equal(t, "https://any.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
