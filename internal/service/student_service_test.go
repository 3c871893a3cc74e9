package service

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/models"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
)

const testAvatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg"

func newStudentService(repos *testRepos) *StudentService {
	return NewStudentService(repos.students, repos.profiles, validator.New(), zap.NewNop(), testAvatarBaseURL)
}

func TestStudentServiceCreateDefaults(t *testing.T) {
	repos := newTestRepos()
	svc := newStudentService(repos)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateStudentRequest{Name: "Nodira Karimova", Email: "nodira@edu.uz"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.Coins)
	assert.Equal(t, models.RoleStudent, created.Role)
	assert.Empty(t, created.Password)
	assert.True(t, strings.HasPrefix(created.Avatar, testAvatarBaseURL+"?seed="), created.Avatar)
	assert.Contains(t, created.Avatar, "Nodira+Karimova")

	// Password is stored, just never exposed.
	stored, err := repos.students.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultStudentPassword, stored.Password)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc := newStudentService(newTestRepos())

	_, err := svc.Create(context.Background(), CreateStudentRequest{Name: "No Email"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), CreateStudentRequest{Name: "Bad Email", Email: "not-an-email"})
	require.Error(t, err)
}

func TestStudentServiceUpdatePartial(t *testing.T) {
	repos := newTestRepos()
	svc := newStudentService(repos)
	ctx := context.Background()

	name := "Alisher Renamed"
	updated, err := svc.Update(ctx, "1", UpdateStudentRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	// Untouched fields survive.
	assert.Equal(t, "alisher@edu.uz", updated.Email)

	stored, err := repos.students.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultStudentPassword, stored.Password)
	assert.Equal(t, 150, stored.Coins)
}

func TestStudentServiceUpdateMissing(t *testing.T) {
	svc := newStudentService(newTestRepos())
	name := "Ghost"
	_, err := svc.Update(context.Background(), "nope", UpdateStudentRequest{Name: &name})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceDeleteClearsProfile(t *testing.T) {
	repos := newTestRepos()
	svc := newStudentService(repos)
	ctx := context.Background()

	repos.profiles.AddSeenTasks(ctx, "1", []string{"t1"})
	repos.profiles.SetLastBonusDate(ctx, "1", "2026-08-31")

	require.NoError(t, svc.Delete(ctx, "1"))

	_, err := repos.students.FindByID(ctx, "1")
	require.Error(t, err)
	assert.Empty(t, repos.profiles.SeenTasks(ctx, "1"))
	assert.Empty(t, repos.profiles.LastBonusDate(ctx, "1"))
}

func TestStudentServiceAdjustCoinsClampsAtZero(t *testing.T) {
	repos := newTestRepos()
	svc := newStudentService(repos)
	ctx := context.Background()

	updated, err := svc.AdjustCoins(ctx, "1", -9999)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Coins)

	updated, err = svc.AdjustCoins(ctx, "1", 40)
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Coins)
}

func TestStudentServiceLeaderboard(t *testing.T) {
	repos := newTestRepos()
	svc := newStudentService(repos)
	ctx := context.Background()

	entries := svc.Leaderboard(ctx, "3")
	require.Len(t, entries, 3)
	// Seed balances: Zuxra 620, Alisher 150, Javohir 85.
	assert.Equal(t, []string{"2", "1", "3"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 3, entries[2].Rank)
	assert.True(t, entries[2].Current)
	assert.False(t, entries[0].Current)
}

func TestStudentServiceLeaderboardStableOnTies(t *testing.T) {
	repos := newTestRepos()
	svc := newStudentService(repos)
	ctx := context.Background()

	// Equalize Alisher and Javohir; collection order must break the tie.
	_, err := svc.AdjustCoins(ctx, "3", 65)
	require.NoError(t, err)

	entries := svc.Leaderboard(ctx, "")
	require.Len(t, entries, 3)
	assert.Equal(t, "1", entries[1].ID)
	assert.Equal(t, "3", entries[2].ID)
}

func TestStudentServiceRank(t *testing.T) {
	svc := newStudentService(newTestRepos())
	ctx := context.Background()

	assert.Equal(t, 1, svc.Rank(ctx, "2"))
	assert.Equal(t, 3, svc.Rank(ctx, "3"))
	assert.Equal(t, 0, svc.Rank(ctx, "missing"))
}

func TestStudentServiceListStripsPasswords(t *testing.T) {
	svc := newStudentService(newTestRepos())

	for _, student := range svc.List(context.Background()) {
		assert.Empty(t, student.Password)
	}
}
