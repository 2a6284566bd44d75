package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"storefront/internal/tokens"
)

type AdminMiddleware struct {
	JWTSecret []byte
}

func NewAdminMiddleware(secret []byte) *AdminMiddleware {
	return &AdminMiddleware{JWTSecret: secret}
}

// RequireAdmin gates a route behind a valid bearer token issued at login.
func (m *AdminMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		claims, err := tokens.AdminClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set("admin_id", claims.Subject)
		c.Set("username", claims.Username)
		return next(c)
	}
}
