package handlers

import (
	"net/http"

	"github.com/anonto42/feedstore/backend/internal/middleware"
	"github.com/anonto42/feedstore/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/user", h.GetCurrentUser)
	g.GET("/users/:username", h.GetUserByUsername)
}

// GetCurrentUser returns the actor's profile
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), middleware.ActorID(c))
	if err != nil {
		return notFoundOr500(err, "User not found")
	}
	return c.JSON(http.StatusOK, user)
}

// GetUserByUsername looks up a profile by exact username
func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return notFoundOr500(err, "User not found")
	}
	return c.JSON(http.StatusOK, user)
}
