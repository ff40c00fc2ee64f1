package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	advctrl "github.com/rjmahfuztech/nesthunt/app/echoServer/controller/advertisement"
	authctrl "github.com/rjmahfuztech/nesthunt/app/echoServer/controller/auth"
	favctrl "github.com/rjmahfuztech/nesthunt/app/echoServer/controller/favourite"
	orderctrl "github.com/rjmahfuztech/nesthunt/app/echoServer/controller/order"
	paymentctrl "github.com/rjmahfuztech/nesthunt/app/echoServer/controller/payment"
	rrctrl "github.com/rjmahfuztech/nesthunt/app/echoServer/controller/rentrequest"
	reviewctrl "github.com/rjmahfuztech/nesthunt/app/echoServer/controller/review"
)

type C struct {
	Auth          *authctrl.Controller
	Advertisement *advctrl.Controller
	RentRequest   *rrctrl.Controller
	Order         *orderctrl.Controller
	Payment       *paymentctrl.Controller
	Favourite     *favctrl.Controller
	Review        *reviewctrl.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	pub.GET("/advertisements", c.Advertisement.List)
	pub.GET("/advertisements/:id", c.Advertisement.Detail)
	pub.GET("/advertisements/:id/reviews", c.Review.List)

	// Gateway callbacks arrive unauthenticated.
	pub.POST("/payment/success", c.Payment.Success)
	pub.POST("/payment/fail", c.Payment.Fail)
	pub.POST("/payment/cancel", c.Payment.Cancel)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	auth.Use(principalExtractor())

	// Advertisements
	auth.POST("/advertisements", c.Advertisement.Create)
	auth.PATCH("/advertisements/:id/status", c.Advertisement.Moderate)
	auth.GET("/my/advertisements", c.Advertisement.Mine)
	auth.PUT("/my/advertisements/:id", c.Advertisement.Update)
	auth.DELETE("/my/advertisements/:id", c.Advertisement.Delete)

	// Rent requests
	auth.GET("/advertisements/:id/rent-requests", c.RentRequest.ListForAdvertisement)
	auth.PATCH("/rent-requests/:id", c.RentRequest.Decide)
	auth.POST("/my/rent-requests", c.RentRequest.Create)
	auth.GET("/my/rent-requests", c.RentRequest.Mine)
	auth.DELETE("/my/rent-requests/:id", c.RentRequest.Cancel)

	// Orders
	auth.POST("/orders", c.Order.Create)
	auth.GET("/my/orders", c.Order.Mine)
	auth.POST("/orders/:id/payment", c.Order.InitiatePayment)
	auth.DELETE("/orders/:id", c.Order.Cancel)
	auth.GET("/advertisements/:id/rented", c.Order.HasRented)

	// Reviews
	auth.POST("/advertisements/:id/reviews", c.Review.Create)

	// Favourites
	auth.POST("/my/favourites", c.Favourite.Create)
	auth.GET("/my/favourites", c.Favourite.Mine)
	auth.DELETE("/my/favourites/:id", c.Favourite.Delete)
}

// principalExtractor copies the verified claims into plain context values the
// controllers read through jwtx.
func principalExtractor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, ok := ctx.Get("user").(jwt.MapClaims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			sub, ok := claims["sub"].(float64)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			staff, _ := claims["staff"].(bool)

			ctx.Set("user_id", int64(sub))
			ctx.Set("is_staff", staff)
			return next(ctx)
		}
	}
}
