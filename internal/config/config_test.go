package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "gallery:activity", cfg.Activity.Stream)
	assert.Equal(t, 12, cfg.Gallery.ImageCount)
	assert.Equal(t, 24*time.Hour, cfg.Security.SessionTTL)
	assert.Equal(t, uint32(64*1024), cfg.Security.PasswordMemory)
	assert.Equal(t, uint8(2), cfg.Security.PasswordThreads)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("AIGALLERY_GALLERY_IMAGECOUNT", "30")
	t.Setenv("AIGALLERY_SECURITY_SESSIONTTL", "30m")
	t.Setenv("AIGALLERY_REDIS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Gallery.ImageCount)
	assert.Equal(t, 30*time.Minute, cfg.Security.SessionTTL)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "default secret in production", env: map[string]string{"AIGALLERY_ENVIRONMENT": "production"}},
		{name: "no images", env: map[string]string{"AIGALLERY_GALLERY_IMAGECOUNT": "0"}},
		{name: "zero session ttl", env: map[string]string{"AIGALLERY_SECURITY_SESSIONTTL": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

// chdirTemp moves into an empty directory so no config.yaml or .env is found.
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
