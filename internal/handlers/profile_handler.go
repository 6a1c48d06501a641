package handlers

import (
	"net/http"
	"strconv"

	"github.com/matejhrz/pixgram/backend/internal/models"
	"github.com/matejhrz/pixgram/backend/internal/service"
	"github.com/labstack/echo/v4"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetOwnProfile)
	g.PUT("/profile", h.UpdateOwnProfile)
	g.GET("/profiles/search", h.SearchProfiles)
	g.GET("/profiles/:userId", h.GetProfile)
	g.POST("/profiles/create-missing", h.CreateMissingProfiles)
}

// GetOwnProfile returns the viewer's profile, creating it on first view.
func (h *ProfileHandler) GetOwnProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	profile, err := h.profileService.GetOrCreateProfile(currentUserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateOwnProfile updates the viewer's name, bio and location.
func (h *ProfileHandler) UpdateOwnProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileService.UpdateProfile(currentUserID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// GetProfile returns another user's profile by user ID, creating it lazily
// when the user exists but has never been viewed.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	profile, err := h.profileService.GetOrCreateProfile(uint(userID))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// SearchProfiles searches profiles by user name or interest.
func (h *ProfileHandler) SearchProfiles(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}

	profiles, err := h.profileService.SearchProfiles(query)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"profiles": profiles}})
}

// CreateMissingProfiles backfills profiles for users who predate the
// lazy-create behavior.
func (h *ProfileHandler) CreateMissingProfiles(c echo.Context) error {
	created, err := h.profileService.CreateMissingProfiles()
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"created": created}})
}
