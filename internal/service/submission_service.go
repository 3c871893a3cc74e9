package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/models"
	"github.com/educoin-uz/educoin-api/internal/repository"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
)

type submissionRepository interface {
	All(ctx context.Context) []models.HomeworkSubmission
	ByStudent(ctx context.Context, studentID string) []models.HomeworkSubmission
	FindByID(ctx context.Context, id string) (*models.HomeworkSubmission, error)
	Create(ctx context.Context, sub models.HomeworkSubmission)
	Transition(ctx context.Context, id string, to models.SubmissionStatus) (*models.HomeworkSubmission, error)
}

type submissionStudentRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	AdjustCoins(ctx context.Context, id string, delta int) (*models.User, error)
}

type submissionTaskRepository interface {
	FindByID(ctx context.Context, id string) (*models.Task, error)
}

// SubmitHomeworkRequest holds payload for handing in a task.
type SubmitHomeworkRequest struct {
	TaskID string `json:"taskId" validate:"required"`
	Link   string `json:"link" validate:"required"`
	Image  string `json:"image,omitempty"`
}

// SubmissionService handles homework hand-in and adjudication. The coin
// reward is snapshotted onto the submission at hand-in time, so approval
// never depends on the task still existing.
type SubmissionService struct {
	repo      submissionRepository
	students  submissionStudentRepository
	tasks     submissionTaskRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubmissionService constructs the submission service.
func NewSubmissionService(repo submissionRepository, students submissionStudentRepository, tasks submissionTaskRepository, validate *validator.Validate, logger *zap.Logger) *SubmissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{repo: repo, students: students, tasks: tasks, validator: validate, logger: logger}
}

// Submit hands in homework for a task on behalf of the given student.
// Student name, task title and coin value are copied onto the record.
func (s *SubmissionService) Submit(ctx context.Context, studentID string, req SubmitHomeworkRequest) (*models.HomeworkSubmission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	task, err := s.tasks.FindByID(ctx, req.TaskID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
	}

	sub := models.HomeworkSubmission{
		ID:          uuid.NewString(),
		StudentID:   student.ID,
		StudentName: student.Name,
		TaskID:      task.ID,
		TaskTitle:   task.Title,
		Coins:       task.Coins,
		Link:        NormalizeLink(req.Link),
		Image:       req.Image,
		Status:      models.SubmissionPending,
		SubmittedAt: time.Now().UnixMilli(),
	}
	s.repo.Create(ctx, sub)
	s.logger.Info("homework submitted", zap.String("submission_id", sub.ID), zap.String("student_id", student.ID), zap.String("task_id", task.ID))
	return &sub, nil
}

// Approve transitions a PENDING submission to APPROVED and credits the
// snapshotted coin reward. The repository guards the transition, so a
// repeated approval can never credit twice.
func (s *SubmissionService) Approve(ctx context.Context, id string) (*models.HomeworkSubmission, error) {
	sub, err := s.repo.Transition(ctx, id, models.SubmissionApproved)
	if err != nil {
		return nil, mapSubmissionError(err)
	}
	if _, err := s.students.AdjustCoins(ctx, sub.StudentID, sub.Coins); err != nil {
		// The student was deleted after submitting; the approval itself stands.
		s.logger.Warn("approved submission for missing student, coins not credited",
			zap.String("submission_id", sub.ID), zap.String("student_id", sub.StudentID))
	} else {
		s.logger.Info("submission approved", zap.String("submission_id", sub.ID), zap.Int("coins", sub.Coins))
	}
	return sub, nil
}

// Reject transitions a PENDING submission to REJECTED. No coins move.
func (s *SubmissionService) Reject(ctx context.Context, id string) (*models.HomeworkSubmission, error) {
	sub, err := s.repo.Transition(ctx, id, models.SubmissionRejected)
	if err != nil {
		return nil, mapSubmissionError(err)
	}
	s.logger.Info("submission rejected", zap.String("submission_id", sub.ID))
	return sub, nil
}

// List returns every submission, most recent first. Admin view.
func (s *SubmissionService) List(ctx context.Context) []models.HomeworkSubmission {
	return s.repo.All(ctx)
}

// ListByStudent returns one student's submissions, most recent first.
func (s *SubmissionService) ListByStudent(ctx context.Context, studentID string) []models.HomeworkSubmission {
	return s.repo.ByStudent(ctx, studentID)
}

func mapSubmissionError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, "submission not found")
	case errors.Is(err, repository.ErrAlreadyResolved):
		return appErrors.Clone(appErrors.ErrAlreadyResolved, "submission already resolved")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update submission")
	}
}
