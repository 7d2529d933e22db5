package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"aigallery/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]models.Session)}
}

func (r *SessionRepository) Create(ctx context.Context, session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.LastSeenAt = now
	r.sessions[session.ID] = session
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return models.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Update replaces the view fields of an existing session.
func (r *SessionRepository) Update(ctx context.Context, session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[session.ID]
	if !ok {
		return ErrSessionNotFound
	}
	current.View = session.View
	current.SelectedImageID = session.SelectedImageID
	r.sessions[session.ID] = current
	return nil
}

func (r *SessionRepository) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *SessionRepository) Touch(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	session.LastSeenAt = time.Now().UTC()
	r.sessions[id] = session
	return nil
}

// DeleteExpired drops every session whose ExpiresAt is before now and reports
// how many were removed.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.ExpiresAt.Before(now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

func (r *SessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
