package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"aigallery/internal/config"
	"aigallery/internal/models"
	"aigallery/internal/repository"
)

type fixture struct {
	cfg          *config.AppConfig
	users        *repository.UserRepository
	sessions     *repository.SessionRepository
	images       *repository.ImageRepository
	interactions *repository.InteractionRepository
	auth         *AuthService
	gallery      *GalleryService
	tracker      *InteractionService
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			JWTAccessSecret: "test-secret",
			SessionTTL:      time.Hour,
			PasswordTime:    1,
			PasswordMemory:  1024,
			PasswordThreads: 1,
		},
		Gallery: config.GalleryConfig{ImageCount: 3, Seed: 1},
	}
}

func newFixture(t *testing.T, publisher EventPublisher) *fixture {
	t.Helper()
	logger := zerolog.New(io.Discard)
	f := &fixture{
		cfg:          testConfig(),
		users:        repository.NewUserRepository(),
		sessions:     repository.NewSessionRepository(),
		images:       repository.NewImageRepository(),
		interactions: repository.NewInteractionRepository(),
	}
	f.auth = NewAuthService(f.users, f.sessions, f.cfg, logger)
	f.gallery = NewGalleryService(f.images, f.sessions, f.interactions, nil, logger)
	f.tracker = NewInteractionService(f.images, f.users, f.interactions, publisher, logger)

	ctx := context.Background()
	require.NoError(t, f.auth.SeedDemoUser(ctx))

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, img := range []models.Image{
		{ID: 1, Title: "梦幻森林", Author: "艺术家小明", Tags: []string{"奇幻"}, Likes: 10, Favorites: 4, Views: 200,
			Reactions: map[models.ReactionType]int{models.ReactionHappy: 3, models.ReactionConfused: 1}, CreatedAt: base},
		{ID: 2, Title: "赛博朋克城市", Author: "创作者小红", Tags: []string{"科幻"}, Likes: 0, Favorites: 0, Views: 900,
			Reactions: map[models.ReactionType]int{models.ReactionHappy: 0, models.ReactionConfused: 0}, CreatedAt: base.Add(time.Hour)},
		{ID: 3, Title: "未来机甲", Author: "设计师小李", Tags: []string{"科幻", "人物"}, Likes: 99, Views: 10,
			CreatedAt: base.Add(-time.Hour)},
	} {
		require.NoError(t, f.images.Create(ctx, img))
	}
	return f
}

func (f *fixture) login(t *testing.T, username, password string) *models.Session {
	t.Helper()
	result, err := f.auth.Login(context.Background(), LoginInput{Username: username, Password: password})
	require.NoError(t, err)
	return &result.Session
}

func (f *fixture) register(t *testing.T, username string) *models.Session {
	t.Helper()
	result, err := f.auth.Register(context.Background(), RegisterInput{Username: username, Password: "secret1", Email: username + "@example.com"})
	require.NoError(t, err)
	return &result.Session
}
