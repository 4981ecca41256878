// Package httperr maps service errors onto HTTP responses.
package httperr

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/util/apperr"
)

// JSON writes the status and body for a service error. Uncoded errors are
// logged with the request id and answered as a plain 500.
func JSON(c echo.Context, log *slog.Logger, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case apperr.KindInvalid, apperr.KindNotAvailable:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case apperr.KindConflict:
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	case apperr.KindUnsupportedState:
		// Unknown state values use an "error" body, not "message".
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	log.Error("request failed",
		"err", err,
		"req_id", rid,
		"path", c.Path(),
		"method", c.Request().Method,
	)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}
