package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"projecthub_backend/internal/ai"
	"projecthub_backend/internal/config"
	"projecthub_backend/internal/email"
	"projecthub_backend/internal/handlers"
	"projecthub_backend/internal/logger"
	"projecthub_backend/internal/middleware"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/internal/routes"
	"projecthub_backend/internal/services"
	"projecthub_backend/internal/validator"
	"projecthub_backend/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full dependency graph, starts the notification
// worker on the given context and returns the configured gin engine.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	userRepo := repositories.NewUserRepository(gormDB)
	projectRepo := repositories.NewProjectRepository(gormDB)
	taskRepo := repositories.NewTaskRepository(gormDB)
	meetingRepo := repositories.NewMeetingRepository(gormDB)
	scheduleRepo := repositories.NewScheduleRepository(gormDB)
	insightRepo := repositories.NewInsightRepository(gormDB)

	aiService := ai.NewService(cfg.AI)

	notificationService := services.NewNotificationService(notificationRepo, scheduleRepo, aiService)
	digestService := services.NewDigestService(
		notificationRepo, userRepo, projectRepo, taskRepo, meetingRepo, insightRepo,
		aiService,
	)

	renderer := email.NewRenderer(cfg.App.BaseURL)
	var transport email.Transport
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, using mock email transport")
		transport = &MockEmailTransport{}
	} else {
		transport = email.NewSMTPTransport(cfg.Email)
	}

	worker := workers.NewNotificationWorker(
		notificationRepo, userRepo, projectRepo, taskRepo, meetingRepo, scheduleRepo,
		notificationService, digestService,
		renderer, transport,
	)
	worker.Start(ctx)

	base := handlers.NewBaseHandler(validator.New())
	notificationHandler := handlers.NewNotificationHandler(base, notificationService, digestService, userRepo)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, notificationHandler)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		gin.Recovery(),
	)
	return ginRouter
}
