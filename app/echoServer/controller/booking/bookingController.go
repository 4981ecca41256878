package booking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/httperr"
	"shareit/app/echoServer/identity"
	"shareit/model"
	bookingsvc "shareit/service/booking"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create booking
// @Summary      Create booking
// @Description  Submit a WAITING booking for an available item
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "Booker id"
// @Param        payload  body  CreateBookingReq  true  "Booking payload"
// @Success      201  {object}  model.Booking
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /bookings [post]
func (h *Controller) Create(c echo.Context) error {
	uid, err := identity.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	b, err := h.Svc.Create(c.Request().Context(), uid, req.ItemID, req.Start, req.End)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// PATCH /bookings/:id?approved=bool — owner approves or rejects.
func (h *Controller) Confirm(c echo.Context) error {
	uid, err := identity.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "approved must be a boolean"})
	}
	b, err := h.Svc.Confirm(c.Request().Context(), uid, id, approved)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, b)
}

// GET /bookings/:id — visible to the booker and the item owner only.
func (h *Controller) GetByID(c echo.Context) error {
	uid, err := identity.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Svc.GetByID(c.Request().Context(), uid, id)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, b)
}

// GET /bookings?state=&from=&size=
func (h *Controller) ListForBooker(c echo.Context) error {
	return h.list(c, h.Svc.ListForBooker)
}

// GET /bookings/owner?state=&from=&size=
func (h *Controller) ListForOwner(c echo.Context) error {
	return h.list(c, h.Svc.ListForOwner)
}

func (h *Controller) list(c echo.Context, fn listFn) error {
	uid, err := identity.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	st, err := bookingsvc.ParseState(c.QueryParam("state"))
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	rows, err := fn(c.Request().Context(), uid, st, from, size)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, rows)
}

type listFn = func(ctx context.Context, userID int64, st bookingsvc.State, from, size int) ([]model.Booking, error)

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
}

func pageParams(c echo.Context) (from, size int, err error) {
	from, size = 0, 20
	if raw := c.QueryParam("from"); raw != "" {
		from, err = strconv.Atoi(raw)
		if err != nil || from < 0 {
			return 0, 0, errBadFrom
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return 0, 0, errBadSize
		}
	}
	return from, size, nil
}

var (
	errBadFrom = errors.New("from must be a non-negative integer")
	errBadSize = errors.New("size must be a positive integer")
)
