package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/models"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
)

func newSubmissionService(repos *testRepos) *SubmissionService {
	return NewSubmissionService(repos.submissions, repos.students, repos.tasks, validator.New(), zap.NewNop())
}

func seedTaskID(t *testing.T, repos *testRepos) string {
	t.Helper()
	tasks := repos.tasks.All(context.Background())
	require.NotEmpty(t, tasks)
	return tasks[0].ID
}

func TestSubmissionServiceSubmitSnapshots(t *testing.T) {
	repos := newTestRepos()
	svc := newSubmissionService(repos)
	ctx := context.Background()

	taskID := seedTaskID(t, repos)
	task, err := repos.tasks.FindByID(ctx, taskID)
	require.NoError(t, err)

	sub, err := svc.Submit(ctx, "1", SubmitHomeworkRequest{TaskID: taskID, Link: "drive.google.com/doc"})
	require.NoError(t, err)
	assert.Equal(t, "Alisher", sub.StudentName)
	assert.Equal(t, task.Title, sub.TaskTitle)
	assert.Equal(t, task.Coins, sub.Coins)
	assert.Equal(t, "https://drive.google.com/doc", sub.Link)
	assert.Equal(t, models.SubmissionPending, sub.Status)
	assert.NotZero(t, sub.SubmittedAt)
}

func TestSubmissionServiceSubmitUnknownRefs(t *testing.T) {
	repos := newTestRepos()
	svc := newSubmissionService(repos)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "ghost", SubmitHomeworkRequest{TaskID: seedTaskID(t, repos), Link: "x.uz"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Submit(ctx, "1", SubmitHomeworkRequest{TaskID: "nope", Link: "x.uz"})
	require.Error(t, err)

	_, err = svc.Submit(ctx, "1", SubmitHomeworkRequest{TaskID: seedTaskID(t, repos)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSubmissionServiceApproveCreditsOnce(t *testing.T) {
	repos := newTestRepos()
	svc := newSubmissionService(repos)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, "1", SubmitHomeworkRequest{TaskID: seedTaskID(t, repos), Link: "x.uz"})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionApproved, approved.Status)

	student, err := repos.students.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 150+sub.Coins, student.Coins)

	// Second approval is rejected and must not credit again.
	_, err = svc.Approve(ctx, sub.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadyResolved.Code, appErrors.FromError(err).Code)

	student, err = repos.students.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 150+sub.Coins, student.Coins)
}

func TestSubmissionServiceRejectMovesNoCoins(t *testing.T) {
	repos := newTestRepos()
	svc := newSubmissionService(repos)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, "1", SubmitHomeworkRequest{TaskID: seedTaskID(t, repos), Link: "x.uz"})
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionRejected, rejected.Status)

	student, err := repos.students.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 150, student.Coins)

	// A rejected submission cannot be approved afterwards.
	_, err = svc.Approve(ctx, sub.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadyResolved.Code, appErrors.FromError(err).Code)
}

func TestSubmissionServiceApproveAfterStudentDeleted(t *testing.T) {
	repos := newTestRepos()
	svc := newSubmissionService(repos)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, "1", SubmitHomeworkRequest{TaskID: seedTaskID(t, repos), Link: "x.uz"})
	require.NoError(t, err)
	require.NoError(t, repos.students.Delete(ctx, "1"))

	approved, err := svc.Approve(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionApproved, approved.Status)
}

func TestSubmissionServiceListOrdering(t *testing.T) {
	repos := newTestRepos()
	svc := newSubmissionService(repos)
	ctx := context.Background()
	taskID := seedTaskID(t, repos)

	first, err := svc.Submit(ctx, "1", SubmitHomeworkRequest{TaskID: taskID, Link: "a.uz"})
	require.NoError(t, err)
	second, err := svc.Submit(ctx, "2", SubmitHomeworkRequest{TaskID: taskID, Link: "b.uz"})
	require.NoError(t, err)

	all := svc.List(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	mine := svc.ListByStudent(ctx, "1")
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)
}
