package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aigallery/internal/models"
	"aigallery/internal/repository"
)

func TestAuthService_LoginDemoAccount(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	result, err := f.auth.Login(ctx, LoginInput{Username: "demo", Password: "demo123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "demo", result.User.Username)
	assert.Equal(t, models.ViewGallery, result.Session.View)
	assert.Equal(t, result.User.ID, result.Session.UserID)

	_, err = f.auth.Login(ctx, LoginInput{Username: "demo", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, LoginInput{Username: "nobody", Password: "demo123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_SeedDemoUserIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.auth.SeedDemoUser(context.Background()))
	assert.Equal(t, 1, f.users.Count())
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	result, err := f.auth.Register(ctx, RegisterInput{Username: "alice", Password: "pw", Email: "Alice@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.ViewGallery, result.Session.View)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.Equal(t, 2, f.users.Count())

	_, err = f.auth.Register(ctx, RegisterInput{Username: "alice", Password: "other", Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.Equal(t, 2, f.users.Count())

	_, err = f.auth.Register(ctx, RegisterInput{Username: "demo", Password: "x"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestAuthService_RegisterRequiresCredentials(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.auth.Register(context.Background(), RegisterInput{Username: "bob"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestAuthService_RegisteredUserCanLogin(t *testing.T) {
	f := newFixture(t, nil)
	f.register(t, "carol")

	session := f.login(t, "carol", "secret1")
	assert.True(t, session.Authenticated())
}

func TestAuthService_AuthenticateAndLogout(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	result, err := f.auth.Login(ctx, LoginInput{Username: "demo", Password: "demo123"})
	require.NoError(t, err)

	session, user, err := f.auth.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Session.ID, session.ID)
	assert.Equal(t, "demo", user.Username)

	require.NoError(t, f.auth.Logout(ctx, session))
	_, _, err = f.auth.Authenticate(ctx, result.Token)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestAuthService_AuthenticateRejectsGarbage(t *testing.T) {
	f := newFixture(t, nil)
	_, _, err := f.auth.Authenticate(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestAuthService_SweepExpired(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	result, err := f.auth.Login(ctx, LoginInput{Username: "demo", Password: "demo123"})
	require.NoError(t, err)
	assert.Zero(t, f.auth.SweepExpired(ctx))

	f.auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, _, err = f.auth.Authenticate(ctx, result.Token)
	assert.Error(t, err)

	f.register(t, "dave")
	assert.Equal(t, 1, f.sessions.Count())
	f.auth.now = func() time.Time { return time.Now().Add(4 * time.Hour) }
	assert.Equal(t, 1, f.auth.SweepExpired(ctx))
	assert.Zero(t, f.sessions.Count())
}
