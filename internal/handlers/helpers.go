package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mraihan79/inkwell/backend/internal/engine"
	"github.com/mraihan79/inkwell/backend/internal/middleware"
)

// httpError maps the engine's error taxonomy onto HTTP statuses in one
// place instead of per endpoint.
func httpError(err error) error {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, engine.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func viewerFrom(c echo.Context) *engine.Principal {
	return middleware.GetPrincipal(c)
}

// requireViewer returns the principal or a 401 for routes that must be
// authenticated even before reaching the engine.
func requireViewer(c echo.Context) (*engine.Principal, error) {
	viewer := middleware.GetPrincipal(c)
	if viewer == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return viewer, nil
}
