package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pulsefeed/backend/internal/feed"
	"github.com/pulsefeed/backend/internal/models"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService *feed.Service
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *feed.Service) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/feed/hashtag/:name", h.GetFeedByHashtag)
}

// FeedEntry is a ranked post enriched with the caller's reaction summary
type FeedEntry struct {
	feed.RankedPost
	Reactions models.ReactionSummary `json:"reactions"`
}

// GetFeed returns all posts ordered by popularity score, enriched with vote
// totals and the caller's own reaction
func (h *FeedHandler) GetFeed(c echo.Context) error {
	ranked, err := h.feedService.Rank(c.Request().Context())
	if err != nil {
		return feedError(err)
	}

	entries, err := h.enrich(c, ranked)
	if err != nil {
		return feedError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": entries})
}

// GetFeedByHashtag returns the posts attached to a hashtag, ordered by
// popularity score. An unknown hashtag is a 404, not an empty feed.
func (h *FeedHandler) GetFeedByHashtag(c echo.Context) error {
	name := c.Param("name")

	ranked, err := h.feedService.RankByHashtag(c.Request().Context(), name)
	if err != nil {
		return feedError(err)
	}

	entries, err := h.enrich(c, ranked)
	if err != nil {
		return feedError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"hashtag": feed.NormalizeTag(name),
		"posts":   entries,
	})
}

func (h *FeedHandler) enrich(c echo.Context, ranked []feed.RankedPost) ([]FeedEntry, error) {
	userID := currentUserID(c)

	entries := make([]FeedEntry, len(ranked))
	for i, post := range ranked {
		summary, err := h.feedService.ReactionSummary(c.Request().Context(), post.ID, userID)
		if err != nil {
			return nil, err
		}
		entries[i] = FeedEntry{RankedPost: post, Reactions: summary}
	}
	return entries, nil
}
