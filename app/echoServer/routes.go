package echoServer

import (
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/controller/booking"
	"shareit/app/echoServer/controller/item"
	"shareit/app/echoServer/controller/request"
	"shareit/app/echoServer/controller/user"
	"shareit/app/echoServer/identity"
)

type C struct {
	User    *user.Controller
	Item    *item.Controller
	Booking *booking.Controller
	Request *request.Controller
}

func Register(e *echo.Echo, c C) {
	// User management carries no caller identity.
	users := e.Group("/users")
	users.POST("", c.User.Create)
	users.GET("", c.User.List)
	users.GET("/:id", c.User.Get)
	users.PATCH("/:id", c.User.Update)
	users.DELETE("/:id", c.User.Delete)

	// Everything else requires X-Sharer-User-Id.
	id := identity.Middleware()

	items := e.Group("/items", id)
	items.POST("", c.Item.Create)
	items.GET("", c.Item.ListOwn)
	items.GET("/search", c.Item.Search)
	items.GET("/:id", c.Item.Get)
	items.PATCH("/:id", c.Item.Update)
	items.POST("/:id/comment", c.Item.AddComment)

	bookings := e.Group("/bookings", id)
	bookings.POST("", c.Booking.Create)
	bookings.GET("", c.Booking.ListForBooker)
	bookings.GET("/owner", c.Booking.ListForOwner)
	bookings.GET("/:id", c.Booking.Get)
	bookings.PATCH("/:id", c.Booking.SetApproval)

	requests := e.Group("/requests", id)
	requests.POST("", c.Request.Create)
	requests.GET("", c.Request.ListOwn)
	requests.GET("/all", c.Request.ListAll)
	requests.GET("/:id", c.Request.Get)
}
