package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mraihan79/inkwell/backend/internal/engine"
	"github.com/mraihan79/inkwell/backend/internal/models"
)

// CommentHandler handles HTTP requests related to comments and replies
type CommentHandler struct {
	engagement *engine.Engagement
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(engagement *engine.Engagement) *CommentHandler {
	return &CommentHandler{engagement: engagement}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/blogs/:blog_id/comments", h.CreateComment)
	g.POST("/comments/:id/replies", h.CreateReply)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.POST("/comments/:id/like", h.LikeComment)
	g.DELETE("/comments/:id/like", h.UnlikeComment)
}

// CreateComment adds a top-level comment to a blog
func (h *CommentHandler) CreateComment(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	node, err := h.engagement.PostComment(c.Request().Context(), viewer, c.Param("blog_id"), req.Content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "new_comment": node})
}

// CreateReply adds a reply under a comment
func (h *CommentHandler) CreateReply(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	node, err := h.engagement.PostReply(c.Request().Context(), viewer, c.Param("id"), req.Content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "new_reply": node})
}

// DeleteComment removes an owned comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	if err := h.engagement.DeleteComment(c.Request().Context(), viewer, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// LikeComment records the viewer's like on a comment
func (h *CommentHandler) LikeComment(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	count, err := h.engagement.LikeComment(c.Request().Context(), viewer, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "likes_count": count})
}

// UnlikeComment removes the viewer's like from a comment
func (h *CommentHandler) UnlikeComment(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	count, err := h.engagement.UnlikeComment(c.Request().Context(), viewer, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "likes_count": count})
}
