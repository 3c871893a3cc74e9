package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/models"
	"github.com/educoin-uz/educoin-api/internal/repository"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
)

type shopStudentRepository interface {
	Spend(ctx context.Context, id string, cost int) (*models.User, error)
}

// PurchaseResult reports the outcome of a successful buy.
type PurchaseResult struct {
	Reward  models.Reward `json:"reward"`
	Balance int           `json:"balance"`
}

// ShopService sells catalog rewards for coins. The catalog is immutable
// reference data baked into the binary.
type ShopService struct {
	students shopStudentRepository
	catalog  []models.Reward
	logger   *zap.Logger
}

// NewShopService constructs the shop service.
func NewShopService(students shopStudentRepository, logger *zap.Logger) *ShopService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShopService{students: students, catalog: models.RewardCatalog(), logger: logger}
}

// Catalog returns the full reward inventory.
func (s *ShopService) Catalog(_ context.Context) []models.Reward {
	out := make([]models.Reward, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// CatalogByCategory filters the inventory by shop section.
func (s *ShopService) CatalogByCategory(_ context.Context, category models.RewardCategory) []models.Reward {
	out := make([]models.Reward, 0)
	for _, r := range s.catalog {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// Buy debits the reward cost from the student's balance. On insufficient
// funds nothing is mutated.
func (s *ShopService) Buy(ctx context.Context, studentID, rewardID string) (*PurchaseResult, error) {
	var reward *models.Reward
	for _, r := range s.catalog {
		if r.ID == rewardID {
			match := r
			reward = &match
			break
		}
	}
	if reward == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "reward not found")
	}

	student, err := s.students.Spend(ctx, studentID, reward.Cost)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientBalance):
			return nil, appErrors.Clone(appErrors.ErrInsufficientFunds, "not enough coins for this reward")
		case errors.Is(err, repository.ErrNotFound):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to complete purchase")
		}
	}

	s.logger.Info("reward purchased", zap.String("student_id", studentID), zap.String("reward_id", rewardID), zap.Int("cost", reward.Cost))
	return &PurchaseResult{Reward: *reward, Balance: student.Coins}, nil
}
