package httpserver

import (
	"errors"
	"net/http"

	"github.com/foodondoor/backend/internal/service"
	"github.com/foodondoor/backend/pkg/tokens"
	"github.com/labstack/echo/v4"
)

// httpError maps service sentinels onto HTTP statuses. The wrapped message
// minus the sentinel prefix is what the client sees.
func httpError(err error) *echo.HTTPError {
	msg := err.Error()
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, trimSentinel(msg, service.ErrValidation))
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, trimSentinel(msg, service.ErrNotFound))
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, trimSentinel(msg, service.ErrConflict))
	case errors.Is(err, tokens.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func trimSentinel(msg string, sentinel error) string {
	prefix := sentinel.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
