package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pulsefeed/backend/internal/feed"
)

// ReactionHandler handles HTTP requests related to up/down votes on posts
type ReactionHandler struct {
	feedService *feed.Service
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(feedService *feed.Service) *ReactionHandler {
	return &ReactionHandler{feedService: feedService}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/reactions/:type", h.RecordReaction)
	g.GET("/posts/:post_id/reactions", h.GetReactionSummary)
}

// RecordReaction records the caller's up/down vote on a post. Voting again
// with the same type is a no-op; voting with the other type overwrites the
// previous vote.
func (h *ReactionHandler) RecordReaction(c echo.Context) error {
	userID := currentUserID(c)

	postID, err := parseID(c.Param("post_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if err := h.feedService.RecordReaction(c.Request().Context(), postID, userID, c.Param("type")); err != nil {
		return feedError(err)
	}

	summary, err := h.feedService.ReactionSummary(c.Request().Context(), postID, userID)
	if err != nil {
		return feedError(err)
	}

	return c.JSON(http.StatusOK, summary)
}

// GetReactionSummary returns a post's vote totals plus the caller's own
// reaction
func (h *ReactionHandler) GetReactionSummary(c echo.Context) error {
	postID, err := parseID(c.Param("post_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	summary, err := h.feedService.ReactionSummary(c.Request().Context(), postID, currentUserID(c))
	if err != nil {
		return feedError(err)
	}

	return c.JSON(http.StatusOK, summary)
}
