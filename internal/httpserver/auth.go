package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/events"
	"storefront/internal/logging"
	"storefront/internal/service"
	"storefront/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || req.Password == "" {
		l.Warn("login_error", "status", 400, "reason", "missing fields")
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	h.publish(c, "admin", map[string]any{
		"type":     "admin_logged_in",
		"adminID":  res.Admin.ID,
		"username": res.Admin.Username,
	})

	l.Info("login_success")
	return c.JSON(http.StatusOK, transport.LoginResponse{
		Token: res.Token,
		Admin: transport.AdminInfo{
			ID:       res.Admin.ID,
			Username: res.Admin.Username,
		},
	})
}

func (h *AuthHTTP) publish(c echo.Context, key string, event map[string]any) {
	if err := h.Producer.PublishEvent(c.Request().Context(), key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event_publish_failed", "error", err)
	}
}
