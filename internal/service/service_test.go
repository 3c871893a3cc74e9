package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/kvstore"
	"github.com/educoin-uz/educoin-api/internal/repository"
)

// testRepos wires real repositories over a shared in-memory store so the
// service tests exercise the full load/mutate/persist path.
type testRepos struct {
	store       *kvstore.MemoryStore
	students    *repository.StudentRepository
	tasks       *repository.TaskRepository
	submissions *repository.SubmissionRepository
	sessions    *repository.SessionRepository
	profiles    *repository.ProfileRepository
}

func newTestRepos() *testRepos {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	logger := zap.NewNop()
	return &testRepos{
		store:       store,
		students:    repository.NewStudentRepository(ctx, store, logger),
		tasks:       repository.NewTaskRepository(ctx, store, logger),
		submissions: repository.NewSubmissionRepository(ctx, store, logger),
		sessions:    repository.NewSessionRepository(store, logger),
		profiles:    repository.NewProfileRepository(store, logger),
	}
}
