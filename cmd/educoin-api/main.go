package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/educoin-uz/educoin-api/api/swagger"
	"github.com/educoin-uz/educoin-api/internal/handler"
	"github.com/educoin-uz/educoin-api/internal/kvstore"
	"github.com/educoin-uz/educoin-api/internal/middleware"
	"github.com/educoin-uz/educoin-api/internal/models"
	"github.com/educoin-uz/educoin-api/internal/repository"
	"github.com/educoin-uz/educoin-api/internal/service"
	"github.com/educoin-uz/educoin-api/pkg/cache"
	"github.com/educoin-uz/educoin-api/pkg/config"
	"github.com/educoin-uz/educoin-api/pkg/database"
	"github.com/educoin-uz/educoin-api/pkg/logger"
	corsmiddleware "github.com/educoin-uz/educoin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/educoin-uz/educoin-api/pkg/middleware/requestid"
	"github.com/educoin-uz/educoin-api/pkg/storage"
)

// @title EduCoin API
// @version 1.0.0
// @description Gamified classroom economy: tasks, coins, reward shop and leaderboard
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := newStore(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init store", "backend", cfg.Store.Backend, "error", err)
	}

	ctx := context.Background()
	studentRepo := repository.NewStudentRepository(ctx, store, logr)
	taskRepo := repository.NewTaskRepository(ctx, store, logr)
	submissionRepo := repository.NewSubmissionRepository(ctx, store, logr)
	sessionRepo := repository.NewSessionRepository(store, logr)
	profileRepo := repository.NewProfileRepository(store, logr)

	exportStorage, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "dir", cfg.Exports.StorageDir, "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(studentRepo, sessionRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	studentSvc := service.NewStudentService(studentRepo, profileRepo, validate, logr, cfg.Avatar.BaseURL)
	taskSvc := service.NewTaskService(taskRepo, validate, logr)
	submissionSvc := service.NewSubmissionService(submissionRepo, studentRepo, taskRepo, validate, logr)
	shopSvc := service.NewShopService(studentRepo, logr)
	bonusSvc := service.NewBonusService(studentRepo, profileRepo, cfg.Bonus.Amount, logr)
	notificationSvc := service.NewNotificationService(taskRepo, profileRepo, logr)
	motivatorSvc := service.NewMotivatorService(&http.Client{Timeout: cfg.Motivator.Timeout}, cfg.Motivator, logr)
	exportSvc := service.NewExportService(studentSvc, exportStorage, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(studentSvc, metricsSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc, metricsSvc)
	shopHandler := handler.NewShopHandler(shopSvc, metricsSvc)
	dashboardHandler := handler.NewDashboardHandler(studentSvc, taskSvc, notificationSvc, bonusSvc, motivatorSvc, metricsSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)

		authed := api.Group("")
		authed.Use(middleware.JWT(authSvc))
		{
			authed.POST("/auth/logout", authHandler.Logout)
			authed.GET("/auth/me", authHandler.Me)

			authed.GET("/leaderboard", studentHandler.Leaderboard)
			authed.GET("/exports/leaderboard", exportHandler.Leaderboard)

			authed.GET("/students", studentHandler.List)
			authed.GET("/students/:id", middleware.RBAC(string(models.RoleAdmin), middleware.SelfRole), studentHandler.Get)
			authed.POST("/students", middleware.RequireRoles(models.RoleAdmin), studentHandler.Create)
			authed.PUT("/students/:id", middleware.RBAC(string(models.RoleAdmin), middleware.SelfRole), studentHandler.Update)
			authed.DELETE("/students/:id", middleware.RequireRoles(models.RoleAdmin), studentHandler.Delete)
			authed.POST("/students/:id/coins", middleware.RequireRoles(models.RoleAdmin), studentHandler.AdjustCoins)

			authed.GET("/tasks", taskHandler.List)
			authed.GET("/tasks/all", middleware.RequireRoles(models.RoleAdmin), taskHandler.ListAll)
			authed.GET("/tasks/:id", taskHandler.Get)
			authed.POST("/tasks", middleware.RequireRoles(models.RoleAdmin), taskHandler.Create)
			authed.DELETE("/tasks/expired", middleware.RequireRoles(models.RoleAdmin), taskHandler.Prune)

			authed.POST("/submissions", middleware.RequireRoles(models.RoleStudent), submissionHandler.Submit)
			authed.GET("/submissions", middleware.RequireRoles(models.RoleAdmin), submissionHandler.List)
			authed.GET("/submissions/my", middleware.RequireRoles(models.RoleStudent), submissionHandler.My)
			authed.POST("/submissions/:id/approve", middleware.RequireRoles(models.RoleAdmin), submissionHandler.Approve)
			authed.POST("/submissions/:id/reject", middleware.RequireRoles(models.RoleAdmin), submissionHandler.Reject)

			authed.GET("/shop/rewards", shopHandler.Catalog)
			authed.POST("/shop/rewards/:id/buy", middleware.RequireRoles(models.RoleStudent), shopHandler.Buy)

			authed.GET("/dashboard", middleware.RequireRoles(models.RoleStudent), dashboardHandler.Summary)
			authed.POST("/dashboard/bonus", middleware.RequireRoles(models.RoleStudent), dashboardHandler.ClaimBonus)
			authed.POST("/dashboard/notifications/clear", middleware.RequireRoles(models.RoleStudent), dashboardHandler.ClearNotifications)
			authed.GET("/dashboard/motivation", middleware.RequireRoles(models.RoleStudent), dashboardHandler.Motivation)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// newStore builds the persistence backend selected by configuration.
func newStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		return kvstore.NewPostgresStore(db)
	case config.StoreBackendRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return kvstore.NewRedisStore(client), nil
	default:
		return kvstore.NewFileStore(cfg.Store.Dir)
	}
}
