package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/anonto42/feedstore/backend/internal/models"
	"github.com/anonto42/feedstore/backend/internal/repositories"
	"github.com/anonto42/feedstore/backend/internal/router"
	"github.com/anonto42/feedstore/backend/pkg/config"
	"github.com/anonto42/feedstore/backend/pkg/logger"
	"github.com/anonto42/feedstore/backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// The store lives for the whole process and is discarded on exit
	db := repositories.NewDB(
		repositories.WithLogger(zl.Named("store")),
		repositories.WithUser(bootstrapUser(cfg.ActorID)),
	)

	users, err := repositories.NewMemoryUserRepository(db).ListUsers(context.Background())
	if err != nil {
		zl.Fatal("Failed to list seeded users", zap.Error(err))
	}
	zl.Info("Store initialized", zap.Int("seeded_users", len(users)), zap.String("actor_id", cfg.ActorID))

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e, zl)
	router.SetupRoutes(e, db, cfg.ActorID, zl)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zl.Info("Starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Server stopped with error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func bootstrapUser(id string) models.User {
	avatar := "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?auto=format&fit=crop&w=64&h=64"
	return models.User{
		ID:       id,
		Username: "alexj",
		Name:     "Alex Johnson",
		Avatar:   &avatar,
	}
}
