package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNotificationServiceUnseenCount(t *testing.T) {
	repos := newTestRepos()
	svc := NewNotificationService(repos.tasks, repos.profiles, zap.NewNop())
	ctx := context.Background()
	now := time.Now()

	active := repos.tasks.Active(ctx, now)
	require.NotEmpty(t, active)
	assert.Equal(t, len(active), svc.UnseenCount(ctx, "1", now))

	svc.Clear(ctx, "1", now)
	assert.Equal(t, 0, svc.UnseenCount(ctx, "1", now))

	// Clearing again changes nothing.
	svc.Clear(ctx, "1", now)
	assert.Equal(t, 0, svc.UnseenCount(ctx, "1", now))
}

func TestNotificationServiceNewTaskRaisesCount(t *testing.T) {
	repos := newTestRepos()
	svc := NewNotificationService(repos.tasks, repos.profiles, zap.NewNop())
	tasks := NewTaskService(repos.tasks, validator.New(), zap.NewNop())
	ctx := context.Background()
	now := time.Now()

	svc.Clear(ctx, "1", now)
	require.Equal(t, 0, svc.UnseenCount(ctx, "1", now))

	_, err := tasks.Create(ctx, CreateTaskRequest{Title: "Yangi vazifa", Coins: 15, Category: "Tarix"})
	require.NoError(t, err)
	assert.Equal(t, 1, svc.UnseenCount(ctx, "1", now))
}

func TestNotificationServiceExpiredTasksDoNotCount(t *testing.T) {
	repos := newTestRepos()
	svc := NewNotificationService(repos.tasks, repos.profiles, zap.NewNop())
	ctx := context.Background()

	// Past every expiry, nothing is unseen even with an empty seen set.
	farFuture := time.Now().Add(48 * time.Hour)
	assert.Equal(t, 0, svc.UnseenCount(ctx, "1", farFuture))
}

func TestNotificationServicePerStudentSeenSets(t *testing.T) {
	repos := newTestRepos()
	svc := NewNotificationService(repos.tasks, repos.profiles, zap.NewNop())
	ctx := context.Background()
	now := time.Now()

	svc.Clear(ctx, "1", now)
	assert.Equal(t, 0, svc.UnseenCount(ctx, "1", now))
	assert.NotEqual(t, 0, svc.UnseenCount(ctx, "2", now))
}
