// Package main shareit API.
//
// @title           ShareIt API
// @version         1.0
// @description     Peer-to-peer item sharing: items, bookings, comments, item requests.
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"shareit/app/echoServer"
	bookingctrl "shareit/app/echoServer/controller/booking"
	itemctrl "shareit/app/echoServer/controller/item"
	requestctrl "shareit/app/echoServer/controller/request"
	userctrl "shareit/app/echoServer/controller/user"
	"shareit/app/echoServer/validation"
	"shareit/config"
	bookingrepo "shareit/repository/booking"
	commentrepo "shareit/repository/comment"
	itemrepo "shareit/repository/item"
	requestrepo "shareit/repository/request"
	userrepo "shareit/repository/user"
	bookingsvc "shareit/service/booking"
	itemsvc "shareit/service/item"
	requestsvc "shareit/service/request"
	usersvc "shareit/service/user"
	"shareit/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	ir := itemrepo.New(db)
	cr := commentrepo.New(db)
	br := bookingrepo.New(db)
	rr := requestrepo.New(db)

	// services
	us := usersvc.New(ur)
	bs := bookingsvc.New(br, ur, ir)
	is := itemsvc.New(ir, ur, cr, rr, bs)
	rs := requestsvc.New(rr, ur, ir)

	// controllers
	v := validator.New()
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	itemC := &itemctrl.Controller{Svc: is, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	requestC := &requestctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		User:    userC,
		Item:    itemC,
		Booking: bookingC,
		Request: requestC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
