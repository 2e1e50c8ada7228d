// Package gateway is the validating front tier. It rejects malformed input
// with the same shapes the server uses and forwards everything else verbatim.
package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	bookingctrl "shareit/app/echoServer/controller/booking"
	itemctrl "shareit/app/echoServer/controller/item"
	requestctrl "shareit/app/echoServer/controller/request"
	userctrl "shareit/app/echoServer/controller/user"
	"shareit/app/echoServer/httpapi"
	"shareit/app/echoServer/identity"
	"shareit/model"
	"shareit/util/httpx"
)

type Gateway struct {
	base string
	hc   *http.Client
	v    *validator.Validate
	log  *slog.Logger
}

func New(serverURL string, log *slog.Logger) *Gateway {
	return &Gateway{
		base: strings.TrimRight(serverURL, "/"),
		hc:   httpx.Client(),
		v:    validator.New(),
		log:  log,
	}
}

// forward replays the inbound call against the server and relays the
// response. A nil body forwards without one.
func (g *Gateway) forward(c echo.Context, body []byte) error {
	u := g.base + c.Request().URL.Path
	if q := c.Request().URL.RawQuery; q != "" {
		u += "?" + q
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(c.Request().Context(), c.Request().Method, u, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", echo.MIMEApplicationJSON)
	}
	if hv := c.Request().Header.Get(identity.Header); hv != "" {
		req.Header.Set(identity.Header, hv)
	}

	resp, err := g.hc.Do(req)
	if err != nil {
		g.log.Error("forward failed", "err", err, "method", c.Request().Method, "path", c.Request().URL.Path)
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "upstream unavailable"})
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		g.log.Error("forward read failed", "err", err, "path", c.Request().URL.Path)
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "upstream unavailable"})
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = echo.MIMEApplicationJSON
	}
	return c.Blob(resp.StatusCode, ct, b)
}

func (g *Gateway) forwardJSON(c echo.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return g.forward(c, b)
}

func (g *Gateway) pass(c echo.Context) error {
	return g.forward(c, nil)
}

func (g *Gateway) passWithID(c echo.Context) error {
	if _, err := httpapi.PathID(c); err != nil {
		return httpapi.Error(c, err)
	}
	return g.forward(c, nil)
}

func (g *Gateway) passWithPage(c echo.Context) error {
	if _, err := httpapi.ParsePage(c); err != nil {
		return httpapi.Error(c, err)
	}
	return g.forward(c, nil)
}

func bindAndValidate(c echo.Context, v *validator.Validate, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := v.Struct(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	return true, nil
}

// --- users ---

func (g *Gateway) CreateUser(c echo.Context) error {
	var req userctrl.CreateUserReq
	if ok, err := bindAndValidate(c, g.v, &req); !ok {
		return err
	}
	return g.forwardJSON(c, req)
}

func (g *Gateway) UpdateUser(c echo.Context) error {
	if _, err := httpapi.PathID(c); err != nil {
		return httpapi.Error(c, err)
	}
	var req userctrl.UpdateUserReq
	if ok, err := bindAndValidate(c, g.v, &req); !ok {
		return err
	}
	return g.forwardJSON(c, req)
}

// --- items ---

func (g *Gateway) CreateItem(c echo.Context) error {
	var req itemctrl.CreateItemReq
	if ok, err := bindAndValidate(c, g.v, &req); !ok {
		return err
	}
	return g.forwardJSON(c, req)
}

func (g *Gateway) UpdateItem(c echo.Context) error {
	if _, err := httpapi.PathID(c); err != nil {
		return httpapi.Error(c, err)
	}
	var req itemctrl.UpdateItemReq
	if ok, err := bindAndValidate(c, g.v, &req); !ok {
		return err
	}
	return g.forwardJSON(c, req)
}

func (g *Gateway) AddComment(c echo.Context) error {
	if _, err := httpapi.PathID(c); err != nil {
		return httpapi.Error(c, err)
	}
	var req itemctrl.CreateCommentReq
	if ok, err := bindAndValidate(c, g.v, &req); !ok {
		return err
	}
	return g.forwardJSON(c, req)
}

// --- bookings ---

func (g *Gateway) CreateBooking(c echo.Context) error {
	var req bookingctrl.CreateBookingReq
	if ok, err := bindAndValidate(c, g.v, &req); !ok {
		return err
	}
	// Same date rules the server enforces; reject early.
	now := time.Now().UTC()
	if req.Start.Before(now) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "start must not be in the past"})
	}
	if !req.End.After(*req.Start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "end must be after start"})
	}
	return g.forwardJSON(c, req)
}

func (g *Gateway) SetApproval(c echo.Context) error {
	if _, err := httpapi.PathID(c); err != nil {
		return httpapi.Error(c, err)
	}
	if _, err := strconv.ParseBool(c.QueryParam("approved")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "approved must be true or false"})
	}
	return g.forward(c, nil)
}

func (g *Gateway) ListBookings(c echo.Context) error {
	if _, err := model.ParseBookingState(c.QueryParam("state")); err != nil {
		return httpapi.Error(c, err)
	}
	return g.passWithPage(c)
}

// --- requests ---

func (g *Gateway) CreateRequest(c echo.Context) error {
	var req requestctrl.CreateRequestReq
	if ok, err := bindAndValidate(c, g.v, &req); !ok {
		return err
	}
	return g.forwardJSON(c, req)
}
