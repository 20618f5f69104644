package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/config"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/logging"
	"github.com/yukikurage/task-tracker-api/internal/server"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

const connectTimeout = 30 * time.Second

func main() {
	exitCode := 0
	defer func() {
		os.Exit(exitCode)
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database and run migrations
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	store, err := database.Open(connectCtx, cfg.DatabaseURL, database.Options{
		MongoDatabase: cfg.MongoDatabase,
		Debug:         cfg.GinMode == gin.DebugMode,
		Logger:        logger,
	})
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.WithError(err).Warn("Failed to close database")
		}
	}()

	tokens, err := auth.NewTokenManager(cfg.SecretKey)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize token manager")
	}
	hasher := auth.NewPasswordHasher(constants.PasswordHashCost)

	router := server.NewRouter(server.Dependencies{
		AuthService:    services.NewAuthService(store.Users, hasher, tokens, logger),
		TaskService:    services.NewTaskService(store.Tasks),
		Tokens:         tokens,
		Store:          store,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Start server
	if err := server.Run(ctx, cfg.Addr(), router, logger); err != nil {
		logger.WithError(err).Error("Server stopped")
		exitCode = 1
		return
	}
	logger.Info("Server stopped")
}
