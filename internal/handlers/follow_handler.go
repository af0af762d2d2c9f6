package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mraihan79/inkwell/backend/internal/engine"
	"github.com/mraihan79/inkwell/backend/internal/models"
	"github.com/mraihan79/inkwell/backend/internal/repositories"
)

// FollowHandler handles follow/unfollow and follow-request HTTP requests
type FollowHandler struct {
	engagement             *engine.Engagement
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(engagement *engine.Engagement, notifRepo repositories.NotificationRepository) *FollowHandler {
	return &FollowHandler{engagement: engagement, notificationRepository: notifRepo}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.Follow)
	g.DELETE("/users/:id/follow", h.Unfollow)
	g.GET("/follow-requests", h.GetPendingRequests)
	g.PUT("/follow-requests/:id", h.UpdateRequest)
}

// Follow follows a public user or requests to follow a private one
func (h *FollowHandler) Follow(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	state, err := h.engagement.Follow(c.Request().Context(), viewer, uint(targetID))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"follow_status": state}})
}

// Unfollow unfollows a user
func (h *FollowHandler) Unfollow(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.engagement.Unfollow(c.Request().Context(), viewer, uint(targetID)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"follow_status": engine.FollowStateFollow}})
}

// GetPendingRequests lists the viewer's incoming pending follow requests
func (h *FollowHandler) GetPendingRequests(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	requests, err := h.notificationRepository.GetPendingRequests(viewer.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, requests)
}

// UpdateRequest accepts or rejects an incoming follow request
func (h *FollowHandler) UpdateRequest(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	var req models.UpdateFollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Status == models.StatusAccepted {
		err = h.engagement.AcceptFollowRequest(c.Request().Context(), viewer, uint(requestID))
	} else {
		err = h.engagement.RejectFollowRequest(c.Request().Context(), viewer, uint(requestID))
	}
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"status": req.Status}})
}
