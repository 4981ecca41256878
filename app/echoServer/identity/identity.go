// Package identity extracts the caller from the X-Sharer-User-Id header.
// There is no authentication on this API; the gateway trusts the numeric id
// it is handed.
package identity

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

const Header = "X-Sharer-User-Id"

var errMissing = errors.New("missing " + Header + " header")
var errInvalid = errors.New("invalid " + Header + " header")

func UserID(c echo.Context) (int64, error) {
	raw := c.Request().Header.Get(Header)
	if raw == "" {
		return 0, errMissing
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalid
	}
	return id, nil
}
