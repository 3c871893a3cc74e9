package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/models"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
)

const bonusDateLayout = "2006-01-02"

type bonusStudentRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	AdjustCoins(ctx context.Context, id string, delta int) (*models.User, error)
}

type bonusProfileRepository interface {
	LastBonusDate(ctx context.Context, studentID string) string
	SetLastBonusDate(ctx context.Context, studentID, date string)
}

// BonusClaim reports a successful daily-bonus grant.
type BonusClaim struct {
	Amount  int    `json:"amount"`
	Balance int    `json:"balance"`
	Date    string `json:"date"`
}

// BonusService grants a fixed coin bonus once per calendar day per student.
// Eligibility is tracked as a date string, so it resets at local midnight
// rather than 24 hours after the previous claim.
type BonusService struct {
	students bonusStudentRepository
	profiles bonusProfileRepository
	amount   int
	logger   *zap.Logger
	now      func() time.Time
}

// NewBonusService constructs the bonus service.
func NewBonusService(students bonusStudentRepository, profiles bonusProfileRepository, amount int, logger *zap.Logger) *BonusService {
	if amount <= 0 {
		amount = models.DefaultBonusAmount
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BonusService{students: students, profiles: profiles, amount: amount, logger: logger, now: time.Now}
}

// Eligible reports whether the student can claim today's bonus.
func (s *BonusService) Eligible(ctx context.Context, studentID string) bool {
	return s.profiles.LastBonusDate(ctx, studentID) != s.today()
}

// Claim grants the bonus if the student has not claimed it today.
func (s *BonusService) Claim(ctx context.Context, studentID string) (*BonusClaim, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	today := s.today()
	if s.profiles.LastBonusDate(ctx, studentID) == today {
		return nil, appErrors.Clone(appErrors.ErrAlreadyClaimed, "daily bonus already claimed, come back tomorrow")
	}

	student, err := s.students.AdjustCoins(ctx, studentID, s.amount)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to credit bonus")
	}
	s.profiles.SetLastBonusDate(ctx, studentID, today)

	s.logger.Info("daily bonus claimed", zap.String("student_id", studentID), zap.Int("amount", s.amount))
	return &BonusClaim{Amount: s.amount, Balance: student.Coins, Date: today}, nil
}

func (s *BonusService) today() string {
	return s.now().Format(bonusDateLayout)
}
