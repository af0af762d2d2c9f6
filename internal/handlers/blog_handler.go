package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mraihan79/inkwell/backend/internal/engine"
	"github.com/mraihan79/inkwell/backend/internal/models"
	"github.com/mraihan79/inkwell/backend/internal/repositories"
)

// BlogHandler handles HTTP requests related to blogs
type BlogHandler struct {
	blogRepository repositories.BlogRepository
	engagement     *engine.Engagement
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogRepo repositories.BlogRepository, engagement *engine.Engagement) *BlogHandler {
	return &BlogHandler{blogRepository: blogRepo, engagement: engagement}
}

// RegisterPublicBlogRoutes registers read routes that admit anonymous
// viewers
func (h *BlogHandler) RegisterPublicBlogRoutes(g *echo.Group) {
	g.GET("/blogs", h.ListBlogs)
	g.GET("/blogs/:id", h.GetBlog)
}

// RegisterBlogRoutes registers authenticated blog routes
func (h *BlogHandler) RegisterBlogRoutes(g *echo.Group) {
	g.POST("/blogs", h.CreateBlog)
	g.DELETE("/blogs/:id", h.DeleteBlog)
	g.POST("/blogs/:id/like", h.ToggleLike)
}

// ListBlogs returns the home feed: every visible blog, newest first, fully
// enriched
func (h *BlogHandler) ListBlogs(c echo.Context) error {
	blogs, err := h.blogRepository.GetAllBlogs(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.engagement.ListBlogs(c.Request().Context(), viewerFrom(c), blogs)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"blogs": views}})
}

// GetBlog returns one enriched blog
func (h *BlogHandler) GetBlog(c echo.Context) error {
	view, err := h.engagement.GetBlog(c.Request().Context(), viewerFrom(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": view})
}

// CreateBlog publishes a new blog
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	var req models.CreateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	blog, err := h.engagement.CreateBlog(c.Request().Context(), viewer, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, blog)
}

// DeleteBlog removes an owned blog and its comments and notifications
func (h *BlogHandler) DeleteBlog(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	if err := h.engagement.DeleteBlog(c.Request().Context(), viewer, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleLike flips the viewer's like on a blog
func (h *BlogHandler) ToggleLike(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	liked, count, err := h.engagement.ToggleLike(c.Request().Context(), viewer, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "is_liked": liked, "likes_count": count})
}
