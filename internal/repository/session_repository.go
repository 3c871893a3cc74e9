package repository

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/kvstore"
	"github.com/educoin-uz/educoin-api/internal/models"
)

// SessionRepository persists the single "current user" slot. Each login
// overwrites it; logout clears it.
type SessionRepository struct {
	store  kvstore.Store
	logger *zap.Logger
	mu     sync.Mutex
}

// NewSessionRepository wraps the store.
func NewSessionRepository(store kvstore.Store, logger *zap.Logger) *SessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRepository{store: store, logger: logger}
}

// Get returns the persisted session, or ErrNotFound when no one is logged
// in or the stored value is corrupt.
func (r *SessionRepository) Get(ctx context.Context) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, err := r.store.Get(ctx, keySession)
	if err != nil {
		return nil, ErrNotFound
	}
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		r.logger.Warn("corrupt session record, treating as logged out", zap.Error(err))
		return nil, ErrNotFound
	}
	return &session, nil
}

// Put overwrites the session slot.
func (r *SessionRepository) Put(ctx context.Context, session models.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, err := json.Marshal(session)
	if err != nil {
		r.logger.Error("failed to serialize session", zap.Error(err))
		return
	}
	if err := r.store.Set(ctx, keySession, raw); err != nil {
		r.logger.Error("failed to persist session", zap.Error(err))
	}
}

// Clear removes the session slot.
func (r *SessionRepository) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Delete(ctx, keySession); err != nil {
		r.logger.Error("failed to clear session", zap.Error(err))
	}
}
