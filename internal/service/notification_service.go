package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/models"
)

type notificationTaskRepository interface {
	Active(ctx context.Context, now time.Time) []models.Task
}

type notificationProfileRepository interface {
	SeenTasks(ctx context.Context, studentID string) []string
	AddSeenTasks(ctx context.Context, studentID string, taskIDs []string) []string
}

// NotificationService tracks which active tasks a student has already seen.
// The seen set only ever grows; expired task ids simply stop counting.
type NotificationService struct {
	tasks    notificationTaskRepository
	profiles notificationProfileRepository
	logger   *zap.Logger
}

// NewNotificationService constructs the notification service.
func NewNotificationService(tasks notificationTaskRepository, profiles notificationProfileRepository, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{tasks: tasks, profiles: profiles, logger: logger}
}

// UnseenCount returns how many currently active tasks the student has not
// seen yet.
func (s *NotificationService) UnseenCount(ctx context.Context, studentID string, now time.Time) int {
	seen := make(map[string]struct{})
	for _, id := range s.profiles.SeenTasks(ctx, studentID) {
		seen[id] = struct{}{}
	}
	count := 0
	for _, task := range s.tasks.Active(ctx, now) {
		if _, ok := seen[task.ID]; !ok {
			count++
		}
	}
	return count
}

// Clear marks every currently active task as seen. Idempotent.
func (s *NotificationService) Clear(ctx context.Context, studentID string, now time.Time) {
	active := s.tasks.Active(ctx, now)
	ids := make([]string, len(active))
	for i, task := range active {
		ids[i] = task.ID
	}
	s.profiles.AddSeenTasks(ctx, studentID, ids)
}
