package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pulsefeed/backend/internal/feed"
	"github.com/pulsefeed/backend/internal/models"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	feedService *feed.Service
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(feedService *feed.Service) *CommentHandler {
	return &CommentHandler{feedService: feedService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetTopLevelComments)
	g.GET("/comments/:id/replies", h.GetReplies)
}

// CreateComment creates a new comment on a post, optionally as a reply to an
// existing comment on the same post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := currentUserID(c)

	postID, err := parseID(c.Param("post_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.feedService.AddComment(c.Request().Context(), postID, userID, req.Content, req.ParentID)
	if err != nil {
		return feedError(err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetTopLevelComments retrieves the root comments of a post, oldest first
func (h *CommentHandler) GetTopLevelComments(c echo.Context) error {
	postID, err := parseID(c.Param("post_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	comments, err := h.feedService.TopLevelComments(c.Request().Context(), postID)
	if err != nil {
		return feedError(err)
	}

	return c.JSON(http.StatusOK, comments)
}

// GetReplies retrieves the direct replies of a comment, oldest first
func (h *CommentHandler) GetReplies(c echo.Context) error {
	commentID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	replies, err := h.feedService.Replies(c.Request().Context(), commentID)
	if err != nil {
		return feedError(err)
	}

	return c.JSON(http.StatusOK, replies)
}
