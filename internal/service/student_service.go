package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/models"
	"github.com/educoin-uz/educoin-api/internal/repository"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
)

type studentRepository interface {
	All(ctx context.Context) []models.User
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, student models.User)
	Update(ctx context.Context, student models.User) error
	Delete(ctx context.Context, id string) error
	AdjustCoins(ctx context.Context, id string, delta int) (*models.User, error)
}

type studentProfileRepository interface {
	ClearProfile(ctx context.Context, studentID string)
}

// CreateStudentRequest holds payload for registering students.
type CreateStudentRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateStudentRequest is an explicit update command: only non-nil fields
// are applied, so the set of legally updatable fields is fixed by the type.
// Role, coins and badges have dedicated operations and are not editable here.
type UpdateStudentRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=4"`
	Avatar   *string `json:"avatar,omitempty"`
}

// AdjustCoinsRequest applies a signed delta to a student's balance.
type AdjustCoinsRequest struct {
	Delta int `json:"delta"`
}

// StudentService handles roster and coin-balance use-cases.
type StudentService struct {
	repo          studentRepository
	profiles      studentProfileRepository
	validator     *validator.Validate
	logger        *zap.Logger
	avatarBaseURL string
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, profiles studentProfileRepository, validate *validator.Validate, logger *zap.Logger, avatarBaseURL string) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, profiles: profiles, validator: validate, logger: logger, avatarBaseURL: avatarBaseURL}
}

// List returns the roster in stored order, passwords stripped.
func (s *StudentService) List(ctx context.Context) []models.User {
	students := s.repo.All(ctx)
	out := make([]models.User, len(students))
	for i, student := range students {
		out[i] = student.Public()
	}
	return out
}

// Get returns a single student, password stripped.
func (s *StudentService) Get(ctx context.Context, id string) (*models.User, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	public := student.Public()
	return &public, nil
}

// Create registers a new student with a generated id, zero coins, the
// default password and a derived avatar.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := models.User{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Password: models.DefaultStudentPassword,
		Role:     models.RoleStudent,
		Coins:    0,
		Avatar:   s.avatarURL(req.Name),
		Badges:   []string{},
	}
	s.repo.Create(ctx, student)
	s.logger.Info("student registered", zap.String("student_id", student.ID), zap.String("name", student.Name))
	public := student.Public()
	return &public, nil
}

// Update applies the non-nil fields of the command to an existing student.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Password != nil {
		student.Password = *req.Password
	}
	if req.Avatar != nil {
		student.Avatar = *req.Avatar
	}
	if err := s.repo.Update(ctx, *student); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	public := student.Public()
	return &public, nil
}

// Delete removes a student and their per-student state. The confirmation
// step lives in the client; the API call is the confirmed action.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	s.profiles.ClearProfile(ctx, id)
	s.logger.Info("student removed", zap.String("student_id", id))
	return nil
}

// AdjustCoins applies a signed delta, clamping the balance at zero.
func (s *StudentService) AdjustCoins(ctx context.Context, id string, delta int) (*models.User, error) {
	student, err := s.repo.AdjustCoins(ctx, id, delta)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to adjust coins")
	}
	public := student.Public()
	return &public, nil
}

// Leaderboard returns students ranked by coins descending. The sort is
// stable, so students with equal balances keep their collection order.
func (s *StudentService) Leaderboard(ctx context.Context, currentUserID string) []models.LeaderboardEntry {
	students := s.repo.All(ctx)
	sort.SliceStable(students, func(i, j int) bool {
		return students[i].Coins > students[j].Coins
	})
	entries := make([]models.LeaderboardEntry, len(students))
	for i, student := range students {
		entries[i] = models.LeaderboardEntry{
			Rank:    i + 1,
			ID:      student.ID,
			Name:    student.Name,
			Coins:   student.Coins,
			Avatar:  student.Avatar,
			Current: student.ID == currentUserID,
		}
	}
	return entries
}

// Rank returns a student's 1-based leaderboard position, or 0 when the
// student is not on the board.
func (s *StudentService) Rank(ctx context.Context, studentID string) int {
	for _, entry := range s.Leaderboard(ctx, studentID) {
		if entry.ID == studentID {
			return entry.Rank
		}
	}
	return 0
}

func (s *StudentService) avatarURL(seed string) string {
	return fmt.Sprintf("%s?seed=%s", s.avatarBaseURL, url.QueryEscape(seed))
}
