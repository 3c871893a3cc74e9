package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/models"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
)

func TestShopServiceBuySuccess(t *testing.T) {
	repos := newTestRepos()
	svc := NewShopService(repos.students, zap.NewNop())
	ctx := context.Background()

	// Alisher has 150 coins; reward r1 costs 100.
	result, err := svc.Buy(ctx, "1", "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", result.Reward.ID)
	assert.Equal(t, 50, result.Balance)

	student, err := repos.students.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 50, student.Coins)
}

func TestShopServiceBuyInsufficientFunds(t *testing.T) {
	repos := newTestRepos()
	svc := NewShopService(repos.students, zap.NewNop())
	ctx := context.Background()

	// Javohir has 85 coins, not enough for the 100-coin reward.
	_, err := svc.Buy(ctx, "3", "r1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInsufficientFunds.Code, appErrors.FromError(err).Code)

	// Balance must be untouched.
	student, err := repos.students.FindByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, 85, student.Coins)
}

func TestShopServiceBuyUnknownReward(t *testing.T) {
	repos := newTestRepos()
	svc := NewShopService(repos.students, zap.NewNop())

	_, err := svc.Buy(context.Background(), "1", "no-such-reward")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestShopServiceBuyUnknownStudent(t *testing.T) {
	repos := newTestRepos()
	svc := NewShopService(repos.students, zap.NewNop())

	_, err := svc.Buy(context.Background(), "ghost", "r1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestShopServiceCatalog(t *testing.T) {
	svc := NewShopService(newTestRepos().students, zap.NewNop())
	ctx := context.Background()

	catalog := svc.Catalog(ctx)
	require.NotEmpty(t, catalog)

	edu := svc.CatalogByCategory(ctx, models.RewardCategoryEdu)
	tech := svc.CatalogByCategory(ctx, models.RewardCategoryTech)
	assert.Len(t, catalog, len(edu)+len(tech))
	for _, r := range edu {
		assert.Equal(t, models.RewardCategoryEdu, r.Category)
	}
	for _, r := range tech {
		assert.Equal(t, models.RewardCategoryTech, r.Category)
	}
}
