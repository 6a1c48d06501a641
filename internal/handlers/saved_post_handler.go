package handlers

import (
	"net/http"
	"strconv"

	"github.com/matejhrz/pixgram/backend/internal/service"
	"github.com/labstack/echo/v4"
)

// SavedPostHandler handles saved post HTTP requests
type SavedPostHandler struct {
	feedService *service.FeedService
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(feedService *service.FeedService) *SavedPostHandler {
	return &SavedPostHandler{feedService: feedService}
}

// RegisterSavedPostRoutes registers saved post routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/posts/:id/save", h.ToggleSave)
}

// ToggleSave flips the viewer's bookmark on a post and returns the new state.
func (h *SavedPostHandler) ToggleSave(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	saved, err := h.feedService.ToggleSave(uint(postID), currentUserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"saved": saved}})
}
