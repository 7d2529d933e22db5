package repository

import (
	"context"
	"sync"

	"aigallery/internal/models"
)

// InteractionRepository keeps one InteractionState per user id.
type InteractionRepository struct {
	mu     sync.RWMutex
	states map[string]*models.InteractionState
}

func NewInteractionRepository() *InteractionRepository {
	return &InteractionRepository{states: make(map[string]*models.InteractionState)}
}

// Get returns a copy of the user's state; unknown users get an empty state.
func (r *InteractionRepository) Get(ctx context.Context, userID string) *models.InteractionState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.states[userID]
	if !ok {
		return models.NewInteractionState()
	}
	return state.Clone()
}

func (r *InteractionRepository) Update(ctx context.Context, userID string, fn func(*models.InteractionState) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.states[userID]
	if !ok {
		state = models.NewInteractionState()
	}
	draft := state.Clone()
	if err := fn(draft); err != nil {
		return err
	}
	r.states[userID] = draft
	return nil
}
