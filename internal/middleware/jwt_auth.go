package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/mraihan79/inkwell/backend/internal/engine"
	"github.com/mraihan79/inkwell/backend/internal/models"
)

// PrincipalKey is the echo context key the resolved viewer is stored under.
const PrincipalKey = "principal"

// JWTAuth requires a valid bearer token and stores the resolved principal.
func JWTAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := principalFromHeader(c)
			if err != nil {
				return err
			}
			if principal == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}
			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}

// OptionalJWTAuth resolves the principal when a bearer token is present and
// lets anonymous requests through. Listing and detail reads serve logged-out
// viewers; the visibility filter decides what they see.
func OptionalJWTAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := principalFromHeader(c)
			if err != nil {
				return err
			}
			if principal != nil {
				c.Set(PrincipalKey, principal)
			}
			return next(c)
		}
	}
}

// GetPrincipal returns the viewer stored by the auth middleware, or nil for
// an anonymous request.
func GetPrincipal(c echo.Context) *engine.Principal {
	principal, _ := c.Get(PrincipalKey).(*engine.Principal)
	return principal
}

func principalFromHeader(c echo.Context) (*engine.Principal, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	tokenString := parts[1]

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(JWTSecret()), nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	return &engine.Principal{ID: claims.UserID, FullName: claims.FullName}, nil
}

// JWTSecret returns the signing secret shared with the auth handler.
func JWTSecret() string {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret
	}
	return "supersecretjwtkey"
}
