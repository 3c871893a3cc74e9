package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/kvstore"
	"github.com/educoin-uz/educoin-api/internal/models"
)

// TaskRepository holds the task collection. Tasks are append-only; expired
// tasks stay in the collection until pruned.
type TaskRepository struct {
	store  kvstore.Store
	logger *zap.Logger

	mu    sync.Mutex
	tasks []models.Task
}

// NewTaskRepository loads the collection, falling back to seed tasks.
func NewTaskRepository(ctx context.Context, store kvstore.Store, logger *zap.Logger) *TaskRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &TaskRepository{store: store, logger: logger}
	r.tasks = r.load(ctx)
	return r
}

func (r *TaskRepository) load(ctx context.Context) []models.Task {
	raw, err := r.store.Get(ctx, keyTasks)
	if err != nil {
		if err != kvstore.ErrKeyNotFound {
			r.logger.Warn("failed to read task collection, using seed data", zap.Error(err))
		}
		return models.SeedTasks(time.Now())
	}
	var tasks []models.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		r.logger.Warn("corrupt task collection, using seed data", zap.Error(err))
		return models.SeedTasks(time.Now())
	}
	return tasks
}

func (r *TaskRepository) persist(ctx context.Context) {
	raw, err := json.Marshal(r.tasks)
	if err != nil {
		r.logger.Error("failed to serialize task collection", zap.Error(err))
		return
	}
	if err := r.store.Set(ctx, keyTasks, raw); err != nil {
		r.logger.Error("failed to persist task collection", zap.Error(err))
	}
}

// All returns a copy of every task, expired included.
func (r *TaskRepository) All(_ context.Context) []models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Active returns tasks whose expiry lies after the given instant.
func (r *TaskRepository) Active(_ context.Context, now time.Time) []models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if t.Active(now) {
			out = append(out, t)
		}
	}
	return out
}

// FindByID returns the task with the given id, expired or not.
func (r *TaskRepository) FindByID(_ context.Context, id string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tasks {
		if t.ID == id {
			task := t
			return &task, nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a task and persists the collection.
func (r *TaskRepository) Create(ctx context.Context, task models.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
	r.persist(ctx)
}

// PruneExpired drops tasks that expired before the given instant and
// reports how many were removed. Store hygiene only; the active-task view
// never shows them either way.
func (r *TaskRepository) PruneExpired(ctx context.Context, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.tasks[:0]
	for _, t := range r.tasks {
		if t.Active(now) {
			kept = append(kept, t)
		}
	}
	removed := len(r.tasks) - len(kept)
	if removed > 0 {
		r.tasks = kept
		r.persist(ctx)
	}
	return removed
}
