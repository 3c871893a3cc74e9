package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/models"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
)

type taskRepository interface {
	All(ctx context.Context) []models.Task
	Active(ctx context.Context, now time.Time) []models.Task
	FindByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, task models.Task)
	PruneExpired(ctx context.Context, now time.Time) int
}

// CreateTaskRequest holds payload for publishing assignments.
type CreateTaskRequest struct {
	Title    string `json:"title" validate:"required"`
	Coins    int    `json:"coins" validate:"required,gt=0"`
	Category string `json:"category" validate:"required"`
	Link     string `json:"link,omitempty"`
}

// TaskService handles assignment use-cases.
type TaskService struct {
	repo      taskRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTaskService constructs the task service.
func NewTaskService(repo taskRepository, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{repo: repo, validator: validate, logger: logger}
}

// Create publishes a new task active for the fixed 24-hour lifetime.
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}
	task := models.Task{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Coins:     req.Coins,
		Category:  req.Category,
		ExpiresAt: time.Now().Add(models.TaskLifetime).UnixMilli(),
		Link:      NormalizeLink(req.Link),
	}
	s.repo.Create(ctx, task)
	s.logger.Info("task published", zap.String("task_id", task.ID), zap.Int("coins", task.Coins))
	return &task, nil
}

// Active returns tasks that have not expired at the given instant.
func (s *TaskService) Active(ctx context.Context, now time.Time) []models.Task {
	return s.repo.Active(ctx, now)
}

// All returns every stored task, expired included. Admin view only.
func (s *TaskService) All(ctx context.Context) []models.Task {
	return s.repo.All(ctx)
}

// Get returns a task by id regardless of expiry.
func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
	}
	return task, nil
}

// PruneExpired removes expired tasks from the store and reports the count.
func (s *TaskService) PruneExpired(ctx context.Context) int {
	removed := s.repo.PruneExpired(ctx, time.Now())
	if removed > 0 {
		s.logger.Info("pruned expired tasks", zap.Int("removed", removed))
	}
	return removed
}

// NormalizeLink trims the link and prefixes a scheme when missing.
// Empty and placeholder values stay empty.
func NormalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || link == "#" {
		return ""
	}
	lower := strings.ToLower(link)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "https://" + link
	}
	return link
}
