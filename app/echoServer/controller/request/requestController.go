package request

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/httperr"
	"shareit/app/echoServer/identity"
	requestsvc "shareit/service/request"
)

type Controller struct {
	Svc requestsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create request
// @Summary      Create item request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "Requestor id"
// @Param        payload  body  CreateRequestReq  true  "Request payload"
// @Success      201  {object}  model.ItemRequest
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /requests [post]
func (h *Controller) Create(c echo.Context) error {
	uid, err := identity.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	out, err := h.Svc.Create(c.Request().Context(), uid, req.Description)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /requests — caller's own requests, newest first.
func (h *Controller) ListMine(c echo.Context) error {
	uid, err := identity.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	out, err := h.Svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/all?from=&size= — everyone else's requests.
func (h *Controller) ListOthers(c echo.Context) error {
	uid, err := identity.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	out, err := h.Svc.ListOthers(c.Request().Context(), uid, from, size)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/:id
func (h *Controller) GetByID(c echo.Context) error {
	uid, err := identity.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	out, err := h.Svc.GetByID(c.Request().Context(), uid, id)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
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
