package repository

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/kvstore"
	"github.com/educoin-uz/educoin-api/internal/models"
)

// StudentRepository holds the authoritative student collection in memory
// and writes it back to the store on every mutation. A missing or corrupt
// saved collection falls back to the built-in seed roster.
type StudentRepository struct {
	store  kvstore.Store
	logger *zap.Logger

	mu       sync.Mutex
	students []models.User
}

// NewStudentRepository loads the collection from the store.
func NewStudentRepository(ctx context.Context, store kvstore.Store, logger *zap.Logger) *StudentRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &StudentRepository{store: store, logger: logger}
	r.students = r.load(ctx)
	return r
}

func (r *StudentRepository) load(ctx context.Context) []models.User {
	raw, err := r.store.Get(ctx, keyStudents)
	if err != nil {
		if err != kvstore.ErrKeyNotFound {
			r.logger.Warn("failed to read student collection, using seed data", zap.Error(err))
		}
		return models.SeedStudents()
	}
	var students []models.User
	if err := json.Unmarshal(raw, &students); err != nil {
		r.logger.Warn("corrupt student collection, using seed data", zap.Error(err))
		return models.SeedStudents()
	}
	return students
}

func (r *StudentRepository) persist(ctx context.Context) {
	raw, err := json.Marshal(r.students)
	if err != nil {
		r.logger.Error("failed to serialize student collection", zap.Error(err))
		return
	}
	if err := r.store.Set(ctx, keyStudents, raw); err != nil {
		r.logger.Error("failed to persist student collection", zap.Error(err))
	}
}

// All returns a copy of the collection in its stored order.
func (r *StudentRepository) All(_ context.Context) []models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, len(r.students))
	copy(out, r.students)
	return out
}

// First returns the first student in collection order, if any.
func (r *StudentRepository) First(_ context.Context) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.students) == 0 {
		return nil, ErrNotFound
	}
	student := r.students[0]
	return &student, nil
}

// FindByID returns the student with the given id.
func (r *StudentRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.ID == id {
			student := s
			return &student, nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a new student and persists the collection.
func (r *StudentRepository) Create(ctx context.Context, student models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.students = append(r.students, student)
	r.persist(ctx)
}

// Update replaces the record matching the student's id.
func (r *StudentRepository) Update(ctx context.Context, student models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.students {
		if s.ID == student.ID {
			r.students[i] = student
			r.persist(ctx)
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes the student with the given id.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.students {
		if s.ID == id {
			r.students = append(r.students[:i], r.students[i+1:]...)
			r.persist(ctx)
			return nil
		}
	}
	return ErrNotFound
}

// AdjustCoins applies a delta to a student's balance, clamping at zero.
// The read-modify-write happens under the collection lock so no caller can
// observe a half-updated balance.
func (r *StudentRepository) AdjustCoins(ctx context.Context, id string, delta int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.students {
		if s.ID == id {
			coins := s.Coins + delta
			if coins < 0 {
				coins = 0
			}
			r.students[i].Coins = coins
			student := r.students[i]
			r.persist(ctx)
			return &student, nil
		}
	}
	return nil, ErrNotFound
}

// Spend debits cost coins atomically. Unlike AdjustCoins it refuses to go
// below zero: on insufficient balance nothing is mutated.
func (r *StudentRepository) Spend(ctx context.Context, id string, cost int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.students {
		if s.ID == id {
			if s.Coins < cost {
				return nil, ErrInsufficientBalance
			}
			r.students[i].Coins -= cost
			student := r.students[i]
			r.persist(ctx)
			return &student, nil
		}
	}
	return nil, ErrNotFound
}
