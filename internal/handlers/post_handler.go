package handlers

import (
	"net/http"
	"strconv"

	"github.com/matejhrz/pixgram/backend/internal/service"
	"github.com/matejhrz/pixgram/backend/pkg/blob"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	feedService *service.FeedService
	blobs       blob.Store
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(feedService *service.FeedService, blobStore blob.Store) *PostHandler {
	return &PostHandler{feedService: feedService, blobs: blobStore}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetAllPosts)
	g.GET("/posts/feed", h.GetFollowedPosts)
	g.GET("/posts/saved", h.GetSavedPosts)
	g.GET("/posts/user/:id", h.GetPostsByUser)
	g.POST("/posts", h.CreatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// GetAllPosts returns every post with engagement data, newest first.
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	posts, err := h.feedService.ListAllPosts()
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// GetFollowedPosts returns the posts of users the viewer follows.
func (h *PostHandler) GetFollowedPosts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	posts, err := h.feedService.ListFollowedPosts(currentUserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// GetSavedPosts returns the viewer's saved posts, most recently saved first.
func (h *PostHandler) GetSavedPosts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	posts, err := h.feedService.ListSavedPosts(currentUserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// GetPostsByUser returns one author's posts, newest first.
func (h *PostHandler) GetPostsByUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	posts, err := h.feedService.ListPostsByUser(uint(userID))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// CreatePost uploads the image and publishes a post.
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image file is required")
	}
	if fileHeader.Size > blob.MaxUploadSize {
		return echo.NewHTTPError(http.StatusBadRequest, "File size exceeds 5MB limit")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not read uploaded file")
	}
	defer src.Close()

	imageURL, err := h.blobs.Upload(c.Request().Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post, err := h.feedService.CreatePost(currentUserID, imageURL, c.FormValue("caption"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"post": post}})
}

// DeletePost removes an owned post; its likes, comments and saved-post rows
// go with it, and the backing image is cleaned up best-effort.
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if err := h.feedService.DeletePost(uint(postID), currentUserID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
