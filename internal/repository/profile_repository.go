package repository

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/kvstore"
)

// ProfileRepository persists per-student UI state: the set of task ids a
// student has already seen, and the calendar date of their last daily-bonus
// claim. Both live under per-student keys and degrade to empty values when
// missing or corrupt.
type ProfileRepository struct {
	store  kvstore.Store
	logger *zap.Logger
	mu     sync.Mutex
}

// NewProfileRepository wraps the store.
func NewProfileRepository(store kvstore.Store, logger *zap.Logger) *ProfileRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileRepository{store: store, logger: logger}
}

// SeenTasks returns the task ids the student has marked as seen.
func (r *ProfileRepository) SeenTasks(ctx context.Context, studentID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seenTasksLocked(ctx, studentID)
}

func (r *ProfileRepository) seenTasksLocked(ctx context.Context, studentID string) []string {
	raw, err := r.store.Get(ctx, keySeenTasksPrefix+studentID)
	if err != nil {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		r.logger.Warn("corrupt seen-task set, treating as empty", zap.String("student_id", studentID), zap.Error(err))
		return []string{}
	}
	return ids
}

// AddSeenTasks unions the given task ids into the student's seen set and
// returns the updated set. Ids are never removed, so the operation is
// idempotent.
func (r *ProfileRepository) AddSeenTasks(ctx context.Context, studentID string, taskIDs []string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := r.seenTasksLocked(ctx, studentID)
	known := make(map[string]struct{}, len(seen))
	for _, id := range seen {
		known[id] = struct{}{}
	}
	for _, id := range taskIDs {
		if _, ok := known[id]; !ok {
			known[id] = struct{}{}
			seen = append(seen, id)
		}
	}

	raw, err := json.Marshal(seen)
	if err != nil {
		r.logger.Error("failed to serialize seen-task set", zap.Error(err))
		return seen
	}
	if err := r.store.Set(ctx, keySeenTasksPrefix+studentID, raw); err != nil {
		r.logger.Error("failed to persist seen-task set", zap.Error(err))
	}
	return seen
}

// LastBonusDate returns the calendar date (YYYY-MM-DD) of the student's
// last daily-bonus claim, or "" if never claimed.
func (r *ProfileRepository) LastBonusDate(ctx context.Context, studentID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, err := r.store.Get(ctx, keyBonusDatePrefix+studentID)
	if err != nil {
		return ""
	}
	return string(raw)
}

// SetLastBonusDate records the student's last claim date.
func (r *ProfileRepository) SetLastBonusDate(ctx context.Context, studentID, date string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Set(ctx, keyBonusDatePrefix+studentID, []byte(date)); err != nil {
		r.logger.Error("failed to persist bonus claim date", zap.Error(err))
	}
}

// ClearProfile drops both per-student keys; called when a student is deleted.
func (r *ProfileRepository) ClearProfile(ctx context.Context, studentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Delete(ctx, keySeenTasksPrefix+studentID); err != nil {
		r.logger.Error("failed to clear seen-task set", zap.Error(err))
	}
	if err := r.store.Delete(ctx, keyBonusDatePrefix+studentID); err != nil {
		r.logger.Error("failed to clear bonus claim date", zap.Error(err))
	}
}
