package order

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rjmahfuztech/nesthunt/app/echoServer/httperr"
	"github.com/rjmahfuztech/nesthunt/app/echoServer/jwtx"
	ordersvc "github.com/rjmahfuztech/nesthunt/service/order"
)

type Controller struct {
	Svc ordersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/orders
func (h *Controller) Create(c echo.Context) error {
	var req CreateOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	advertID, err := uuid.Parse(req.AdvertisementID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid advertisement id"})
	}

	o, err := h.Svc.Create(c.Request().Context(), advertID, jwtx.Principal(c).ID, ordersvc.ContactInfo{
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return httperr.JSON(c, h.Log, "order create", err)
	}
	return c.JSON(http.StatusCreated, o)
}

// GET /v1/my/orders
func (h *Controller) Mine(c echo.Context) error {
	rows, err := h.Svc.Mine(c.Request().Context(), jwtx.Principal(c).ID)
	if err != nil {
		return httperr.JSON(c, h.Log, "my orders", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/orders/:id/payment
func (h *Controller) InitiatePayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	url, err := h.Svc.InitiatePayment(c.Request().Context(), id, jwtx.Principal(c).ID)
	if err != nil {
		return httperr.JSON(c, h.Log, "initiate payment", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"payment_url": url})
}

// DELETE /v1/orders/:id
func (h *Controller) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Cancel(c.Request().Context(), id, jwtx.Principal(c).ID); err != nil {
		return httperr.JSON(c, h.Log, "order cancel", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "order cancelled"})
}

// GET /v1/advertisements/:id/rented
func (h *Controller) HasRented(c echo.Context) error {
	advertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ok, err := h.Svc.HasUserRented(c.Request().Context(), advertID, jwtx.Principal(c).ID)
	if err != nil {
		return httperr.JSON(c, h.Log, "has rented", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rented": ok})
}
