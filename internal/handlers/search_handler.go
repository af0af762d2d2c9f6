package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mraihan79/inkwell/backend/internal/engine"
	"github.com/mraihan79/inkwell/backend/internal/repositories"
)

// SearchHandler handles the combined user/blog search endpoint
type SearchHandler struct {
	blogRepository repositories.BlogRepository
	engagement     *engine.Engagement
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(blogRepo repositories.BlogRepository, engagement *engine.Engagement) *SearchHandler {
	return &SearchHandler{blogRepository: blogRepo, engagement: engagement}
}

// RegisterSearchRoutes registers the search route
func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
}

// Search returns matching users (each labelled with follow state) and
// matching visible blogs, fully enriched
func (h *SearchHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data":    echo.Map{"users": []engine.UserView{}, "blogs": []engine.BlogView{}},
		})
	}

	viewer := viewerFrom(c)
	ctx := c.Request().Context()

	users, err := h.engagement.SearchUsers(ctx, viewer, query)
	if err != nil {
		return httpError(err)
	}

	blogs, err := h.blogRepository.SearchBlogs(ctx, query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	blogViews, err := h.engagement.ListBlogs(ctx, viewer, blogs)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"users": users, "blogs": blogViews},
	})
}
