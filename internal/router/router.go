package router

import (
	"github.com/anonto42/feedstore/backend/internal/feed"
	"github.com/anonto42/feedstore/backend/internal/handlers"
	"github.com/anonto42/feedstore/backend/internal/middleware"
	"github.com/anonto42/feedstore/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger *zap.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(middleware.RequestLogger(logger))
	e.Use(eMiddleware.CORS())
	logger.Debug("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *repositories.DB, actorID string, logger *zap.Logger) {
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMemoryUserRepository(db)
	postRepo := repositories.NewMemoryPostRepository(db)
	commentRepo := repositories.NewMemoryCommentRepository(db)
	likeRepo := repositories.NewMemoryLikeRepository(db)
	projector := feed.NewProjector(userRepo, postRepo, commentRepo, likeRepo)

	// Every /api request acts as the configured user
	api := e.Group("/api")
	api.Use(middleware.FixedActorMiddleware(actorID))

	handlers.NewUserHandler(userRepo).RegisterUserRoutes(api)
	handlers.NewFeedHandler(projector).RegisterFeedRoutes(api)
	handlers.NewPostHandler(postRepo).RegisterPostRoutes(api)
	handlers.NewLikeHandler(likeRepo).RegisterLikeRoutes(api)
	handlers.NewCommentHandler(commentRepo, projector).RegisterCommentRoutes(api)

	logger.Info("All routes configured.", zap.String("actor_id", actorID))
}
