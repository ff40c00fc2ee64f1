// Package httperr maps the service error taxonomy onto HTTP responses so
// controllers stay a thin bind/validate/dispatch layer.
package httperr

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rjmahfuztech/nesthunt/util/apperr"
)

func status(code apperr.Code) int {
	switch code {
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.Invalid:
		return http.StatusBadRequest
	case apperr.Gateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// JSON renders err. Uncoded errors are logged and hidden behind a generic 500.
func JSON(c echo.Context, log *slog.Logger, op string, err error) error {
	code := apperr.CodeOf(err)
	if code == "" {
		log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(status(code), echo.Map{"message": err.Error()})
}
