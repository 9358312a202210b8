package handlers

import (
	"net/http"

	"github.com/anonto42/feedstore/backend/internal/feed"
	"github.com/anonto42/feedstore/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the author-joined post views
type FeedHandler struct {
	projector *feed.Projector
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(projector *feed.Projector) *FeedHandler {
	return &FeedHandler{projector: projector}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/posts", h.GetFeed)
	g.GET("/posts/:id", h.GetPost)
}

// GetFeed returns every post with its author and the actor's like flag
func (h *FeedHandler) GetFeed(c echo.Context) error {
	posts, err := h.projector.Posts(c.Request().Context(), middleware.ActorID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts")
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost returns a single post with its author and the actor's like flag
func (h *FeedHandler) GetPost(c echo.Context) error {
	post, err := h.projector.Post(c.Request().Context(), middleware.ActorID(c), c.Param("id"))
	if err != nil {
		return notFoundOr500(err, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}
