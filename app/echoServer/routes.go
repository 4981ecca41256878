package echoServer

import (
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/controller/booking"
	"shareit/app/echoServer/controller/item"
	"shareit/app/echoServer/controller/request"
	"shareit/app/echoServer/controller/user"
)

type C struct {
	User    *user.Controller
	Item    *item.Controller
	Booking *booking.Controller
	Request *request.Controller
}

func Register(e *echo.Echo, c C) {
	// Users — no caller header on these.
	e.POST("/users", c.User.Create)
	e.GET("/users", c.User.List)
	e.GET("/users/:id", c.User.GetByID)
	e.PATCH("/users/:id", c.User.Update)
	e.DELETE("/users/:id", c.User.Delete)

	// Items
	e.POST("/items", c.Item.Create)
	e.GET("/items", c.Item.ListMine)
	e.GET("/items/search", c.Item.Search)
	e.GET("/items/:id", c.Item.GetByID)
	e.PATCH("/items/:id", c.Item.Update)
	e.DELETE("/items/:id", c.Item.Delete)
	e.POST("/items/:id/comment", c.Item.AddComment)

	// Bookings
	e.POST("/bookings", c.Booking.Create)
	e.GET("/bookings", c.Booking.ListForBooker)
	e.GET("/bookings/owner", c.Booking.ListForOwner)
	e.GET("/bookings/:id", c.Booking.GetByID)
	e.PATCH("/bookings/:id", c.Booking.Confirm)

	// Item requests
	e.POST("/requests", c.Request.Create)
	e.GET("/requests", c.Request.ListMine)
	e.GET("/requests/all", c.Request.ListOthers)
	e.GET("/requests/:id", c.Request.GetByID)
}
