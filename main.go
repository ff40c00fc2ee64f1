// Package main NestHunt API.
//
// @title           NestHunt API
// @version         1.0
// @description     Rental listing marketplace (advertisements, rent requests, orders, payments).
// @contact.name    Mahfuz Rahman
// @contact.email   rjmahfuz.tech@gmail.com
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/rjmahfuztech/nesthunt/app/echoServer"
	advctrl "github.com/rjmahfuztech/nesthunt/app/echoServer/controller/advertisement"
	authctrl "github.com/rjmahfuztech/nesthunt/app/echoServer/controller/auth"
	favctrl "github.com/rjmahfuztech/nesthunt/app/echoServer/controller/favourite"
	orderctrl "github.com/rjmahfuztech/nesthunt/app/echoServer/controller/order"
	paymentctrl "github.com/rjmahfuztech/nesthunt/app/echoServer/controller/payment"
	rrctrl "github.com/rjmahfuztech/nesthunt/app/echoServer/controller/rentrequest"
	reviewctrl "github.com/rjmahfuztech/nesthunt/app/echoServer/controller/review"
	"github.com/rjmahfuztech/nesthunt/app/echoServer/validation"
	"github.com/rjmahfuztech/nesthunt/config"
	advrepo "github.com/rjmahfuztech/nesthunt/repository/advertisement"
	favrepo "github.com/rjmahfuztech/nesthunt/repository/favourite"
	orderrepo "github.com/rjmahfuztech/nesthunt/repository/order"
	rrepo "github.com/rjmahfuztech/nesthunt/repository/rentrequest"
	reviewrepo "github.com/rjmahfuztech/nesthunt/repository/review"
	"github.com/rjmahfuztech/nesthunt/repository/sslcommerz"
	userrepo "github.com/rjmahfuztech/nesthunt/repository/user"
	advsvc "github.com/rjmahfuztech/nesthunt/service/advertisement"
	authsvc "github.com/rjmahfuztech/nesthunt/service/auth"
	favsvc "github.com/rjmahfuztech/nesthunt/service/favourite"
	ordersvc "github.com/rjmahfuztech/nesthunt/service/order"
	rrsvc "github.com/rjmahfuztech/nesthunt/service/rentrequest"
	reviewsvc "github.com/rjmahfuztech/nesthunt/service/review"
	"github.com/rjmahfuztech/nesthunt/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	ar := advrepo.New(db)
	rr := rrepo.New(db)
	or := orderrepo.New(db)
	fr := favrepo.New(db)
	rvr := reviewrepo.New(db)
	gw := sslcommerz.NewHTTP(cfg.StoreID, cfg.StorePassword)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	advs := advsvc.New(ar)
	rrs := rrsvc.New(db, rr, ar)
	osv := ordersvc.New(db, or, ar, gw, cfg.BaseURL)
	fs := favsvc.New(fr, ar)
	rvs := reviewsvc.New(rvr, ar, osv)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	advC := &advctrl.Controller{Svc: advs, V: v, Log: log}
	rrC := &rrctrl.Controller{Svc: rrs, V: v, Log: log}
	orderC := &orderctrl.Controller{Svc: osv, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: osv, Log: log}
	favC := &favctrl.Controller{Svc: fs, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: rvs, V: v, Log: log}

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
		Auth:          authC,
		Advertisement: advC,
		RentRequest:   rrC,
		Order:         orderC,
		Payment:       paymentC,
		Favourite:     favC,
		Review:        reviewC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
