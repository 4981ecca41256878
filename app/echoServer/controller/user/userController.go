package user

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/httperr"
	usersvc "shareit/service/user"
)

type Controller struct {
	Svc usersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create user
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateUserReq  true  "User payload"
// @Success      201  {object}  model.User
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "email already in use"
// @Router       /users [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	u, err := h.Svc.Create(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, u)
}

// GET /users
func (h *Controller) List(c echo.Context) error {
	users, err := h.Svc.GetAll(c.Request().Context())
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GET /users/:id
func (h *Controller) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	u, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, u)
}

// PATCH /users/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	u, err := h.Svc.Update(c.Request().Context(), id, req.Name, req.Email)
	if err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /users/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httperr.JSON(c, h.Log, err)
	}
	return c.NoContent(http.StatusOK)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
}
