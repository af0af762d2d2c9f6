package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mraihan79/inkwell/backend/internal/engine"
	"github.com/mraihan79/inkwell/backend/internal/models"
	"github.com/mraihan79/inkwell/backend/internal/repositories"
)

// ProfileHandler handles profile and settings HTTP requests
type ProfileHandler struct {
	userRepository repositories.UserRepository
	engagement     *engine.Engagement
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userRepo repositories.UserRepository, engagement *engine.Engagement) *ProfileHandler {
	return &ProfileHandler{userRepository: userRepo, engagement: engagement}
}

// RegisterPublicProfileRoutes registers profile reads that admit anonymous
// viewers
func (h *ProfileHandler) RegisterPublicProfileRoutes(g *echo.Group) {
	g.GET("/profiles/:id", h.GetProfile)
}

// RegisterProfileRoutes registers authenticated profile routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetOwnProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.PUT("/profile/privacy", h.UpdatePrivacy)
}

// GetProfile returns another user's profile with visible blogs
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	view, err := h.engagement.Profile(c.Request().Context(), viewerFrom(c), uint(profileID))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": view})
}

// GetOwnProfile returns the authenticated user's profile
func (h *ProfileHandler) GetOwnProfile(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	view, err := h.engagement.Profile(c.Request().Context(), viewer, viewer.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": view})
}

// UpdateProfile updates the authenticated user's profile fields
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(viewer.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.ProfileImageURL != "" {
		user.ProfileImageURL = req.ProfileImageURL
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdatePrivacy flips the authenticated user's private-account flag
func (h *ProfileHandler) UpdatePrivacy(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	var req models.UpdatePrivacyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userRepository.UpdatePrivacy(viewer.ID, *req.IsPrivate); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"is_private": *req.IsPrivate}})
}
