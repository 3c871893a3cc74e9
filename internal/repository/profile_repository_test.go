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

func TestProfileRepositorySeenTasksUnion(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	repo := NewProfileRepository(store, zap.NewNop())

	assert.Empty(t, repo.SeenTasks(ctx, "1"))

	seen := repo.AddSeenTasks(ctx, "1", []string{"t1", "t2"})
	assert.ElementsMatch(t, []string{"t1", "t2"}, seen)

	// Re-adding existing ids is a no-op union.
	seen = repo.AddSeenTasks(ctx, "1", []string{"t2", "t3"})
	assert.ElementsMatch(t, []string{"t1", "t2", "t3"}, seen)
	assert.ElementsMatch(t, []string{"t1", "t2", "t3"}, repo.SeenTasks(ctx, "1"))
}

func TestProfileRepositoryBonusDate(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	repo := NewProfileRepository(store, zap.NewNop())

	assert.Equal(t, "", repo.LastBonusDate(ctx, "1"))
	repo.SetLastBonusDate(ctx, "1", "2026-08-31")
	assert.Equal(t, "2026-08-31", repo.LastBonusDate(ctx, "1"))
	assert.Equal(t, "", repo.LastBonusDate(ctx, "2"))
}

func TestProfileRepositoryClearProfile(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	repo := NewProfileRepository(store, zap.NewNop())

	repo.AddSeenTasks(ctx, "1", []string{"t1"})
	repo.SetLastBonusDate(ctx, "1", "2026-08-31")
	repo.ClearProfile(ctx, "1")

	assert.Empty(t, repo.SeenTasks(ctx, "1"))
	assert.Equal(t, "", repo.LastBonusDate(ctx, "1"))
}

func TestSessionRepositoryLifecycle(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	repo := NewSessionRepository(store, zap.NewNop())

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	repo.Put(ctx, models.Session{UserID: "1", Role: models.RoleStudent, LoginAt: 1})
	session, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", session.UserID)

	// A later login overwrites the single slot.
	repo.Put(ctx, models.Session{UserID: "admin", Role: models.RoleAdmin, LoginAt: 2})
	session, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", session.UserID)

	repo.Clear(ctx)
	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
