package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minipos/minipos/internal/service"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError maps a service error onto its status code and a JSON {message}
// body. Unexpected errors are logged in full but never leak past the API.
func respondError(c echo.Context, l *slog.Logger, op string, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		l.Error(op, "status", status, "error", err)
		return echo.NewHTTPError(status, "internal server error")
	}
	msg := service.Detail(err)
	l.Warn(op, "status", status, "reason", msg)
	return echo.NewHTTPError(status, msg)
}
