package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minipos/minipos/internal/logging"
	"github.com/minipos/minipos/internal/service"
	"github.com/minipos/minipos/internal/tokens"
	"github.com/minipos/minipos/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
	// SecureCookies turns on the cookie Secure flag; enabled in production.
	SecureCookies bool
}

func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, l, "signup_error", err)
	}

	l.Info("signup_success", "userId", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user created successfully",
		"user": transport.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, l, "login_error", err)
	}

	c.SetCookie(createCookie(
		refreshCookieName,
		res.RefreshToken,
		refreshCookiePath,
		time.Now().Add(tokens.RefreshTTL),
		h.SecureCookies,
	))

	l.Info("login_success", "userId", res.User.ID)
	return c.JSON(http.StatusOK, transport.LoginResponse{
		ID:          res.User.ID,
		Name:        res.User.Name,
		Email:       res.User.Email,
		AccessToken: res.AccessToken,
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		l.Warn("refresh_error", "status", 401, "reason", "refresh token missing")
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}

	accessToken, err := h.Svc.Refresh(ctx, cookie.Value)
	if err != nil {
		return respondError(c, l, "refresh_error", err)
	}

	l.Info("refresh_success")
	return c.JSON(http.StatusOK, transport.RefreshResponse{AccessToken: accessToken})
}

// Logout clears the refresh cookie unconditionally; it never fails, token or
// no token.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	c.SetCookie(deleteCookie(refreshCookieName, refreshCookiePath, h.SecureCookies))

	l.Info("logout_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out successfully"})
}

func (h *AuthHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.list_users")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		return respondError(c, l, "list_users_error", err)
	}

	out := make([]transport.UserResponse, len(users))
	for i, u := range users {
		out[i] = transport.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return c.JSON(http.StatusOK, out)
}
