package request

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/httpapi"
	"shareit/app/echoServer/identity"
	rqs "shareit/service/request"
)

type Controller struct {
	Svc rqs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid := identity.FromContext(c)

	out, err := h.Svc.Create(c.Request().Context(), uid, req.Description)
	if err != nil {
		h.Log.Error("request create", "err", err, "user_id", uid)
		return httpapi.Error(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /requests
func (h *Controller) ListOwn(c echo.Context) error {
	uid := identity.FromContext(c)

	out, err := h.Svc.ListOwn(c.Request().Context(), uid)
	if err != nil {
		return httpapi.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/all?from=&size=
func (h *Controller) ListAll(c echo.Context) error {
	page, err := httpapi.ParsePage(c)
	if err != nil {
		return httpapi.Error(c, err)
	}
	uid := identity.FromContext(c)

	out, err := h.Svc.ListAll(c.Request().Context(), uid, page)
	if err != nil {
		return httpapi.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := httpapi.PathID(c)
	if err != nil {
		return httpapi.Error(c, err)
	}
	uid := identity.FromContext(c)

	out, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return httpapi.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
