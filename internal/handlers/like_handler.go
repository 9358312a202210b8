package handlers

import (
	"net/http"

	"github.com/anonto42/feedstore/backend/internal/middleware"
	"github.com/anonto42/feedstore/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository repositories.LikeRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository) *LikeHandler {
	return &LikeHandler{likeRepository: likeRepo}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
	g.GET("/posts/:id/like", h.GetLikeStatus)
}

// ToggleLike flips the actor's like on a post
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	liked, err := h.likeRepository.ToggleLike(c.Request().Context(), middleware.ActorID(c), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle like")
	}
	return c.JSON(http.StatusOK, echo.Map{"isLiked": liked})
}

// GetLikeStatus reports whether the actor likes a post
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	liked, err := h.likeRepository.HasUserLikedPost(c.Request().Context(), middleware.ActorID(c), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch like status")
	}
	return c.JSON(http.StatusOK, echo.Map{"isLiked": liked})
}
