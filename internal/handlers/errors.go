package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/feedstore/backend/internal/repositories"
	"github.com/anonto42/feedstore/backend/validators"
	"github.com/labstack/echo/v4"
)

// notFoundOr500 maps repository errors to HTTP errors.
func notFoundOr500(err error, notFoundMsg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// invalidInput renders a 400 with one message per failed field.
func invalidInput(c echo.Context, message string, err error) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"message": message,
		"errors":  validators.Messages(err),
	})
}
