package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/kvstore"
	"github.com/educoin-uz/educoin-api/internal/models"
)

func TestStudentRepositorySeedFallback(t *testing.T) {
	store := kvstore.NewMemoryStore()
	repo := NewStudentRepository(context.Background(), store, zap.NewNop())

	students := repo.All(context.Background())
	require.Len(t, students, 3)
	assert.Equal(t, "Alisher", students[0].Name)
	assert.Equal(t, 150, students[0].Coins)
}

func TestStudentRepositoryCorruptFallback(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "students", []byte("{not json")))

	repo := NewStudentRepository(ctx, store, zap.NewNop())
	assert.Len(t, repo.All(ctx), 3)
}

func TestStudentRepositoryPersistRoundTrip(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()

	repo := NewStudentRepository(ctx, store, zap.NewNop())
	repo.Create(ctx, models.User{ID: "x1", Name: "Nodira", Email: "nodira@edu.uz", Role: models.RoleStudent, Badges: []string{}})

	// A fresh repository over the same store must see the identical collection.
	reloaded := NewStudentRepository(ctx, store, zap.NewNop())
	assert.Equal(t, repo.All(ctx), reloaded.All(ctx))
}

func TestStudentRepositoryAdjustCoinsClampsAtZero(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	repo := NewStudentRepository(ctx, store, zap.NewNop())

	student, err := repo.AdjustCoins(ctx, "3", -1000)
	require.NoError(t, err)
	assert.Equal(t, 0, student.Coins)

	student, err = repo.AdjustCoins(ctx, "3", 40)
	require.NoError(t, err)
	assert.Equal(t, 40, student.Coins)
}

func TestStudentRepositoryAdjustCoinsUnknownID(t *testing.T) {
	repo := NewStudentRepository(context.Background(), kvstore.NewMemoryStore(), zap.NewNop())

	_, err := repo.AdjustCoins(context.Background(), "ghost", 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudentRepositorySpend(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	repo := NewStudentRepository(ctx, store, zap.NewNop())

	// Alisher starts with 150 coins.
	student, err := repo.Spend(ctx, "1", 100)
	require.NoError(t, err)
	assert.Equal(t, 50, student.Coins)

	_, err = repo.Spend(ctx, "1", 200)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	unchanged, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 50, unchanged.Coins)
}

func TestStudentRepositoryDelete(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	repo := NewStudentRepository(ctx, store, zap.NewNop())

	require.NoError(t, repo.Delete(ctx, "2"))
	_, err := repo.FindByID(ctx, "2")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "2"), ErrNotFound)
}

func TestStudentRepositoryFirstEmpty(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "students", []byte("[]")))

	repo := NewStudentRepository(ctx, store, zap.NewNop())
	_, err := repo.First(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
