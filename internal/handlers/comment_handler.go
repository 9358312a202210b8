package handlers

import (
	"net/http"

	"github.com/anonto42/feedstore/backend/internal/feed"
	"github.com/anonto42/feedstore/backend/internal/middleware"
	"github.com/anonto42/feedstore/backend/internal/models"
	"github.com/anonto42/feedstore/backend/internal/repositories"
	"github.com/anonto42/feedstore/backend/validators"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	projector         *feed.Projector
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, projector *feed.Projector) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		projector:         projector,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.GetCommentsByPostID)
	g.POST("/posts/:id/comments", h.CreateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// GetCommentsByPostID returns a post's comments with their authors
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	comments, err := h.projector.Comments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comments")
	}
	return c.JSON(http.StatusOK, comments)
}

// CreateComment adds a comment by the current actor to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	req.PostID = c.Param("id")
	req.Content = validators.Sanitize(req.Content)
	if err := c.Validate(&req); err != nil {
		return invalidInput(c, "Invalid comment data", err)
	}

	comment, err := h.commentRepository.CreateComment(c.Request().Context(), middleware.ActorID(c), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create comment")
	}
	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment deletes a comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	deleted, err := h.commentRepository.DeleteComment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete comment")
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	return c.NoContent(http.StatusNoContent)
}
