package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"aigallery/internal/config"
	"aigallery/internal/ids"
	"aigallery/internal/models"
	"aigallery/internal/observability"
	"aigallery/internal/repository"
	"aigallery/internal/security"
	"aigallery/internal/seed"
	"aigallery/internal/view"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("duplicate username")
	ErrMissingCredentials = errors.New("username and password required")
	ErrSessionExpired     = errors.New("session expired")
)

type AuthService struct {
	users    *repository.UserRepository
	sessions *repository.SessionRepository
	cfg      *config.AppConfig
	params   security.Argon2Params
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	users *repository.UserRepository,
	sessions *repository.SessionRepository,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		params: security.ParamsFrom(
			cfg.Security.PasswordTime,
			cfg.Security.PasswordMemory,
			cfg.Security.PasswordThreads,
		),
		log: log,
		now: time.Now,
	}
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
}

type AuthResult struct {
	Token   string
	Session models.Session
	User    models.User
}

// SeedDemoUser creates the demo account unless it already exists.
func (s *AuthService) SeedDemoUser(ctx context.Context) error {
	user := seed.DemoUser()
	if _, err := s.users.FindByUsername(ctx, user.Username); err == nil {
		return nil
	}
	hash, err := security.HashPasswordWithParams(seed.DemoPassword, s.params)
	if err != nil {
		return err
	}
	user.ID = ids.New()
	user.PasswordHash = hash
	user.CreatedAt = s.now().UTC()
	return s.users.Create(ctx, user)
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Username == "" || input.Password == "" {
		return AuthResult{}, ErrMissingCredentials
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		observability.AuthAttemptsTotal.WithLabelValues("register", "duplicate").Inc()
		return AuthResult{}, ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, err
	}

	passwordHash, err := security.HashPasswordWithParams(input.Password, s.params)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Username:     input.Username,
		PasswordHash: passwordHash,
		Email:        input.Email,
		Avatar:       seed.DefaultAvatar,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			observability.AuthAttemptsTotal.WithLabelValues("register", "duplicate").Inc()
			return AuthResult{}, ErrDuplicateUsername
		}
		return AuthResult{}, err
	}

	result, err := s.createSession(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	observability.AuthAttemptsTotal.WithLabelValues("register", "ok").Inc()
	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return result, nil
}

type LoginInput struct {
	Username string
	Password string
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		observability.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return AuthResult{}, ErrInvalidCredentials
	}

	result, err := s.createSession(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	observability.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()
	return result, nil
}

func (s *AuthService) createSession(ctx context.Context, user models.User) (AuthResult, error) {
	now := s.now().UTC()
	session := models.Session{
		ID:        ids.New(),
		View:      view.Initial,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.Security.SessionTTL),
	}
	if err := view.Transition(&session, view.EventAuthenticated, 0); err != nil {
		return AuthResult{}, err
	}
	session.UserID = user.ID

	token, err := security.GenerateSessionToken(
		s.cfg.Security.JWTAccessSecret,
		user.ID,
		session.ID,
		s.cfg.Security.SessionTTL,
	)
	if err != nil {
		return AuthResult{}, err
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return AuthResult{}, fmt.Errorf("create session: %w", err)
	}
	observability.ActiveSessions.Set(float64(s.sessions.Count()))

	return AuthResult{
		Token:   token,
		Session: session,
		User:    user,
	}, nil
}

// Authenticate resolves a bearer token to its live session and user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Session, models.User, error) {
	claims, err := security.ParseSessionToken(token, s.cfg.Security.JWTAccessSecret)
	if err != nil {
		return models.Session{}, models.User{}, err
	}

	session, err := s.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		return models.Session{}, models.User{}, err
	}
	if session.UserID != claims.UserID {
		return models.Session{}, models.User{}, repository.ErrSessionNotFound
	}
	if session.ExpiresAt.Before(s.now()) {
		_ = s.sessions.DeleteByID(ctx, session.ID)
		return models.Session{}, models.User{}, ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return models.Session{}, models.User{}, err
	}

	_ = s.sessions.Touch(ctx, session.ID)
	return session, user, nil
}

// Logout ends the session; the caller is back in the login view.
func (s *AuthService) Logout(ctx context.Context, session models.Session) error {
	if err := view.Transition(&session, view.EventLogout, 0); err != nil {
		return err
	}
	if err := s.sessions.DeleteByID(ctx, session.ID); err != nil {
		return err
	}
	observability.ActiveSessions.Set(float64(s.sessions.Count()))
	return nil
}

// SweepExpired removes expired sessions and reports how many went away.
func (s *AuthService) SweepExpired(ctx context.Context) int {
	removed := s.sessions.DeleteExpired(ctx, s.now())
	observability.ActiveSessions.Set(float64(s.sessions.Count()))
	if removed > 0 {
		s.log.Debug().Int("removed", removed).Msg("expired sessions swept")
	}
	return removed
}
