package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pulsefeed/backend/internal/feed"
	"github.com/pulsefeed/backend/internal/models"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	feedService *feed.Service
	mediaDir    string
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(feedService *feed.Service, mediaDir string) *PostHandler {
	return &PostHandler{
		feedService: feedService,
		mediaDir:    mediaDir,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/image", h.UploadPostImage)
}

// CreatePost creates a new post; hashtags found in the title and body are
// extracted and attached automatically
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := currentUserID(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.feedService.CreatePost(c.Request().Context(), userID, req.Title, req.Body)
	if err != nil {
		return feedError(err)
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost returns a post detail: the post itself, its top-level comments and
// the caller's reaction summary
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	ctx := c.Request().Context()
	post, err := h.feedService.GetPost(ctx, postID)
	if err != nil {
		return feedError(err)
	}

	comments, err := h.feedService.TopLevelComments(ctx, postID)
	if err != nil {
		return feedError(err)
	}

	summary, err := h.feedService.ReactionSummary(ctx, postID, currentUserID(c))
	if err != nil {
		return feedError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post":      post,
		"comments":  comments,
		"reactions": summary,
	})
}

// DeletePost removes a post together with its comments and reactions.
// Admin only.
func (h *PostHandler) DeletePost(c echo.Context) error {
	claims := currentUser(c)
	if claims == nil || !claims.IsAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Admin rights required")
	}

	postID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if err := h.feedService.DeletePost(c.Request().Context(), postID); err != nil {
		return feedError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadPostImage stores an uploaded image under the media directory and sets
// the post's image reference. The reference is set once: a post that already
// has an image rejects further uploads.
func (h *PostHandler) UploadPostImage(c echo.Context) error {
	claims := currentUser(c)

	postID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	ctx := c.Request().Context()
	post, err := h.feedService.GetPost(ctx, postID)
	if err != nil {
		return feedError(err)
	}
	if claims == nil || (post.AuthorID != claims.UserID && !claims.IsAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author can set the post image")
	}
	if post.ImageURL != "" {
		return echo.NewHTTPError(http.StatusConflict, "Post already has an image")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing image file")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read image file")
	}
	defer src.Close()

	if err := os.MkdirAll(h.mediaDir, 0o755); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	filename := fmt.Sprintf("post_%d%s", postID, filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(h.mediaDir, filename))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	imageURL := "/media/" + filename
	if err := h.feedService.SetPostImage(ctx, postID, imageURL); err != nil {
		return feedError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "image_url": imageURL})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
