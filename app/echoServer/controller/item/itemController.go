package item

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/httpapi"
	"shareit/app/echoServer/identity"
	"shareit/model"
	is "shareit/service/item"
)

type Controller struct {
	Svc is.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
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

	it, err := h.Svc.Create(c.Request().Context(), uid, req.Name, req.Description, *req.Available, req.RequestID)
	if err != nil {
		h.Log.Error("item create", "err", err, "user_id", uid)
		return httpapi.Error(c, err)
	}
	return c.JSON(http.StatusCreated, it)
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := httpapi.PathID(c)
	if err != nil {
		return httpapi.Error(c, err)
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	uid := identity.FromContext(c)

	it, err := h.Svc.Update(c.Request().Context(), uid, id, is.UpdatePatch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		h.Log.Error("item update", "err", err, "item_id", id, "user_id", uid)
		return httpapi.Error(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := httpapi.PathID(c)
	if err != nil {
		return httpapi.Error(c, err)
	}
	uid := identity.FromContext(c)

	d, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return httpapi.Error(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// GET /items?from=&size=
func (h *Controller) ListOwn(c echo.Context) error {
	page, err := httpapi.ParsePage(c)
	if err != nil {
		return httpapi.Error(c, err)
	}
	uid := identity.FromContext(c)

	out, err := h.Svc.ListByOwner(c.Request().Context(), uid, page)
	if err != nil {
		return httpapi.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /items/search?text=&from=&size=
func (h *Controller) Search(c echo.Context) error {
	page, err := httpapi.ParsePage(c)
	if err != nil {
		return httpapi.Error(c, err)
	}

	out, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), page)
	if err != nil {
		return httpapi.Error(c, err)
	}
	if out == nil {
		out = []model.Item{}
	}
	return c.JSON(http.StatusOK, out)
}

// POST /items/:id/comment
func (h *Controller) AddComment(c echo.Context) error {
	id, err := httpapi.PathID(c)
	if err != nil {
		return httpapi.Error(c, err)
	}
	var req CreateCommentReq
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

	cm, err := h.Svc.AddComment(c.Request().Context(), uid, id, req.Text)
	if err != nil {
		h.Log.Error("comment create", "err", err, "item_id", id, "user_id", uid)
		return httpapi.Error(c, err)
	}
	return c.JSON(http.StatusOK, cm)
}
