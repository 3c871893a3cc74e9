package handler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/kvstore"
	"github.com/educoin-uz/educoin-api/internal/repository"
	"github.com/educoin-uz/educoin-api/internal/service"
)

// testEnv wires the full service stack over an in-memory store so handlers
// are tested against real domain behavior.
type testEnv struct {
	students      *service.StudentService
	tasks         *service.TaskService
	submissions   *service.SubmissionService
	shop          *service.ShopService
	bonus         *service.BonusService
	notifications *service.NotificationService
	auth          *service.AuthService
	studentRepo   *repository.StudentRepository
}

func newTestEnv() *testEnv {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	logger := zap.NewNop()
	validate := validator.New()

	studentRepo := repository.NewStudentRepository(ctx, store, logger)
	taskRepo := repository.NewTaskRepository(ctx, store, logger)
	subRepo := repository.NewSubmissionRepository(ctx, store, logger)
	sessionRepo := repository.NewSessionRepository(store, logger)
	profileRepo := repository.NewProfileRepository(store, logger)

	return &testEnv{
		students:      service.NewStudentService(studentRepo, profileRepo, validate, logger, "https://api.dicebear.com/7.x/avataaars/svg"),
		tasks:         service.NewTaskService(taskRepo, validate, logger),
		submissions:   service.NewSubmissionService(subRepo, studentRepo, taskRepo, validate, logger),
		shop:          service.NewShopService(studentRepo, logger),
		bonus:         service.NewBonusService(studentRepo, profileRepo, 25, logger),
		notifications: service.NewNotificationService(taskRepo, profileRepo, logger),
		auth: service.NewAuthService(studentRepo, sessionRepo, validate, logger, service.AuthConfig{
			TokenSecret: "test-secret",
			TokenExpiry: time.Hour,
			Issuer:      "educoin-test",
		}),
		studentRepo: studentRepo,
	}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func init() {
	gin.SetMode(gin.TestMode)
}
