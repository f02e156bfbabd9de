package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pulsefeed/backend/internal/feed"
	"github.com/pulsefeed/backend/internal/models"
)

// currentUser returns the JWT claims the auth middleware stored on the
// context, or nil for anonymous requests.
func currentUser(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// currentUserID returns the caller's user ID, 0 for anonymous requests.
func currentUserID(c echo.Context) uint {
	if claims := currentUser(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// feedError maps feed service errors to HTTP errors.
func feedError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, feed.ErrInvalidReactionType), errors.Is(err, feed.ErrEmptyContent):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, feed.ErrPostNotFound),
		errors.Is(err, feed.ErrCommentNotFound),
		errors.Is(err, feed.ErrTagNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, feed.ErrParentMismatch):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
