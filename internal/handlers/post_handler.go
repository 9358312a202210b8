package handlers

import (
	"net/http"

	"github.com/anonto42/feedstore/backend/internal/middleware"
	"github.com/anonto42/feedstore/backend/internal/models"
	"github.com/anonto42/feedstore/backend/internal/repositories"
	"github.com/anonto42/feedstore/backend/validators"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests that mutate posts
type PostHandler struct {
	postRepository repositories.PostRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository) *PostHandler {
	return &PostHandler{postRepository: postRepo}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.PATCH("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post authored by the current actor
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	req.Content = validators.Sanitize(req.Content)
	if err := c.Validate(&req); err != nil {
		return invalidInput(c, "Invalid post data", err)
	}

	post, err := h.postRepository.CreatePost(c.Request().Context(), middleware.ActorID(c), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create post")
	}
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost merges the provided fields into an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Content != nil {
		content := validators.Sanitize(*req.Content)
		req.Content = &content
	}
	// An empty imageUrl clears the image and is exempt from URL validation.
	check := req
	if req.ImageURL != nil && *req.ImageURL == "" {
		check.ImageURL = nil
	}
	if err := c.Validate(&check); err != nil {
		return invalidInput(c, "Invalid update data", err)
	}

	post, err := h.postRepository.UpdatePost(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return notFoundOr500(err, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post. Its comments and likes are kept.
func (h *PostHandler) DeletePost(c echo.Context) error {
	deleted, err := h.postRepository.DeletePost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete post")
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}
