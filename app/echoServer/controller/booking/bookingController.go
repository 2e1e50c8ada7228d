package booking

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/httpapi"
	"shareit/app/echoServer/identity"
	"shareit/model"
	bs "shareit/service/booking"
)

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
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

	b, err := h.Svc.Create(c.Request().Context(), uid, req.ItemID, req.Start.UTC(), req.End.UTC())
	if err != nil {
		h.Log.Error("booking create", "err", err, "user_id", uid)
		return httpapi.Error(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// PATCH /bookings/:id?approved={bool}
func (h *Controller) SetApproval(c echo.Context) error {
	id, err := httpapi.PathID(c)
	if err != nil {
		return httpapi.Error(c, err)
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "approved must be true or false"})
	}
	uid := identity.FromContext(c)

	b, err := h.Svc.SetApproval(c.Request().Context(), uid, id, approved)
	if err != nil {
		h.Log.Error("booking approval", "err", err, "booking_id", id, "user_id", uid)
		return httpapi.Error(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// GET /bookings/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := httpapi.PathID(c)
	if err != nil {
		return httpapi.Error(c, err)
	}
	uid := identity.FromContext(c)

	b, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return httpapi.Error(c, err)
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

func (h *Controller) list(c echo.Context, fn func(ctx context.Context, viewerID int64, state model.BookingState, page *model.Page) ([]model.Booking, error)) error {
	state, err := model.ParseBookingState(c.QueryParam("state"))
	if err != nil {
		return httpapi.Error(c, err)
	}
	page, err := httpapi.ParsePage(c)
	if err != nil {
		return httpapi.Error(c, err)
	}
	uid := identity.FromContext(c)

	out, err := fn(c.Request().Context(), uid, state, page)
	if err != nil {
		return httpapi.Error(c, err)
	}
	if out == nil {
		out = []model.Booking{}
	}
	return c.JSON(http.StatusOK, out)
}
