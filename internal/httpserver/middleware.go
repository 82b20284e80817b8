package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minipos/minipos/internal/tokens"
)

const userIDContextKey = "userID"

// RequireAuth checks the bearer access token on protected routes. The three
// failure reasons stay distinguishable so a client knows when a refresh is
// worth attempting.
func RequireAuth(issuer *tokens.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "access token missing")
			}

			userID, err := issuer.ParseAccess(raw)
			if err != nil {
				if errors.Is(err, tokens.ErrExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "access token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}
