package gateway

import (
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/identity"
)

func Register(e *echo.Echo, g *Gateway) {
	users := e.Group("/users")
	users.POST("", g.CreateUser)
	users.GET("", g.pass)
	users.GET("/:id", g.passWithID)
	users.PATCH("/:id", g.UpdateUser)
	users.DELETE("/:id", g.passWithID)

	id := identity.Middleware()

	items := e.Group("/items", id)
	items.POST("", g.CreateItem)
	items.GET("", g.passWithPage)
	items.GET("/search", g.passWithPage)
	items.GET("/:id", g.passWithID)
	items.PATCH("/:id", g.UpdateItem)
	items.POST("/:id/comment", g.AddComment)

	bookings := e.Group("/bookings", id)
	bookings.POST("", g.CreateBooking)
	bookings.GET("", g.ListBookings)
	bookings.GET("/owner", g.ListBookings)
	bookings.GET("/:id", g.passWithID)
	bookings.PATCH("/:id", g.SetApproval)

	requests := e.Group("/requests", id)
	requests.POST("", g.CreateRequest)
	requests.GET("", g.pass)
	requests.GET("/all", g.passWithPage)
	requests.GET("/:id", g.passWithID)
}
