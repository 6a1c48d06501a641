package handlers

import (
	"net/http"
	"time"

	"github.com/matejhrz/pixgram/backend/internal/service"
	"github.com/matejhrz/pixgram/backend/pkg/blob"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyService *service.StoryService
	blobs        blob.Store
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyService *service.StoryService, blobStore blob.Store) *StoryHandler {
	return &StoryHandler{storyService: storyService, blobs: blobStore}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.GET("/stories", h.GetStories)
	g.POST("/stories", h.CreateStory)
}

// GetStories returns the currently active stories grouped by author,
// most recently active author first.
func (h *StoryHandler) GetStories(c echo.Context) error {
	groups, err := h.storyService.ListActiveStories(time.Now())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"storyGroups": groups},
	})
}

// CreateStory uploads the image and creates a story expiring in 24 hours.
func (h *StoryHandler) CreateStory(c echo.Context) error {
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

	story, err := h.storyService.CreateStory(currentUserID, imageURL, c.FormValue("caption"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"story": story}})
}
