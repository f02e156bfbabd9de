package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pulsefeed/backend/internal/feed"
)

// HashtagHandler handles hashtag-related HTTP requests
type HashtagHandler struct {
	feedService *feed.Service
}

// NewHashtagHandler creates a new HashtagHandler
func NewHashtagHandler(feedService *feed.Service) *HashtagHandler {
	return &HashtagHandler{feedService: feedService}
}

// RegisterHashtagRoutes registers hashtag-related routes
func (h *HashtagHandler) RegisterHashtagRoutes(g *echo.Group) {
	g.GET("/hashtags/trending", h.GetTrendingTags)
}

// GetTrendingTags returns the hashtags with the most distinct posts attached,
// up to n (default 5)
func (h *HashtagHandler) GetTrendingTags(c echo.Context) error {
	n, _ := strconv.Atoi(c.QueryParam("n"))

	tags, err := h.feedService.TopTags(c.Request().Context(), n)
	if err != nil {
		return feedError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"hashtags": tags})
}
