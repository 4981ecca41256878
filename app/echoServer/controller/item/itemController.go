package item

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/httperr"
	"shareit/app/echoServer/identity"
	itemsvc "shareit/service/item"
)

type Controller struct {
	Svc itemsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create item
// @Summary      Create item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "Owner id"
// @Param        payload  body  CreateItemReq  true  "Item payload"
// @Success      201  {object}  model.Item
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /items [post]
func (h *Controller) Create(c echo.Context) error {
	uid, err := identity.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	it, err := h.Svc.Create(c.Request().Context(), uid, req.Name, req.Description, *req.Available, req.RequestID)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, it)
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	uid, err := identity.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	it, err := h.Svc.Update(c.Request().Context(), uid, id, itemsvc.Patch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items/:id
func (h *Controller) GetByID(c echo.Context) error {
	uid, err := identity.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	it, err := h.Svc.GetByID(c.Request().Context(), uid, id)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items
func (h *Controller) ListMine(c echo.Context) error {
	uid, err := identity.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	items, err := h.Svc.ListByOwner(c.Request().Context(), uid, from, size)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GET /items/search — no caller header required.
func (h *Controller) Search(c echo.Context) error {
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// DELETE /items/:id
func (h *Controller) Delete(c echo.Context) error {
	uid, err := identity.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), uid, id); err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.NoContent(http.StatusOK)
}

// POST /items/:id/comment
func (h *Controller) AddComment(c echo.Context) error {
	uid, err := identity.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	cm, err := h.Svc.AddComment(c.Request().Context(), uid, id, req.Text)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, cm)
}

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
