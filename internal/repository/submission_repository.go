package repository

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/kvstore"
	"github.com/educoin-uz/educoin-api/internal/models"
)

// SubmissionRepository holds homework submissions most-recent-first.
// An absent or corrupt collection starts empty; there is no seed data.
type SubmissionRepository struct {
	store  kvstore.Store
	logger *zap.Logger

	mu          sync.Mutex
	submissions []models.HomeworkSubmission
}

// NewSubmissionRepository loads the collection from the store.
func NewSubmissionRepository(ctx context.Context, store kvstore.Store, logger *zap.Logger) *SubmissionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &SubmissionRepository{store: store, logger: logger}
	r.submissions = r.load(ctx)
	return r
}

func (r *SubmissionRepository) load(ctx context.Context) []models.HomeworkSubmission {
	raw, err := r.store.Get(ctx, keySubmissions)
	if err != nil {
		if err != kvstore.ErrKeyNotFound {
			r.logger.Warn("failed to read submission collection, starting empty", zap.Error(err))
		}
		return []models.HomeworkSubmission{}
	}
	var submissions []models.HomeworkSubmission
	if err := json.Unmarshal(raw, &submissions); err != nil {
		r.logger.Warn("corrupt submission collection, starting empty", zap.Error(err))
		return []models.HomeworkSubmission{}
	}
	return submissions
}

func (r *SubmissionRepository) persist(ctx context.Context) {
	raw, err := json.Marshal(r.submissions)
	if err != nil {
		r.logger.Error("failed to serialize submission collection", zap.Error(err))
		return
	}
	if err := r.store.Set(ctx, keySubmissions, raw); err != nil {
		r.logger.Error("failed to persist submission collection", zap.Error(err))
	}
}

// All returns a copy of the collection, most recent first.
func (r *SubmissionRepository) All(_ context.Context) []models.HomeworkSubmission {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.HomeworkSubmission, len(r.submissions))
	copy(out, r.submissions)
	return out
}

// ByStudent returns the given student's submissions, most recent first.
func (r *SubmissionRepository) ByStudent(_ context.Context, studentID string) []models.HomeworkSubmission {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.HomeworkSubmission, 0)
	for _, s := range r.submissions {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out
}

// FindByID returns the submission with the given id.
func (r *SubmissionRepository) FindByID(_ context.Context, id string) (*models.HomeworkSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.submissions {
		if s.ID == id {
			sub := s
			return &sub, nil
		}
	}
	return nil, ErrNotFound
}

// Create prepends the submission so the collection stays most-recent-first.
func (r *SubmissionRepository) Create(ctx context.Context, sub models.HomeworkSubmission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions = append([]models.HomeworkSubmission{sub}, r.submissions...)
	r.persist(ctx)
}

// Transition moves a submission out of PENDING. It is the only mutation
// allowed on a stored submission and fires at most once per record:
// a second call for the same id reports ErrAlreadyResolved.
func (r *SubmissionRepository) Transition(ctx context.Context, id string, to models.SubmissionStatus) (*models.HomeworkSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.submissions {
		if s.ID != id {
			continue
		}
		if s.Status != models.SubmissionPending {
			return nil, ErrAlreadyResolved
		}
		r.submissions[i].Status = to
		sub := r.submissions[i]
		r.persist(ctx)
		return &sub, nil
	}
	return nil, ErrNotFound
}
