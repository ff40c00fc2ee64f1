package payment

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rjmahfuztech/nesthunt/app/echoServer/httperr"
	ordersvc "github.com/rjmahfuztech/nesthunt/service/order"
)

// Controller receives the gateway's asynchronous callbacks. The gateway posts
// form data carrying the transaction reference it was given at session time.
type Controller struct {
	Svc ordersvc.Service
	Log *slog.Logger
}

// POST /v1/payment/success
func (h *Controller) Success(c echo.Context) error {
	tranID := c.FormValue("tran_id")
	if err := h.Svc.ReconcileSuccess(c.Request().Context(), tranID); err != nil {
		h.Log.Error("payment success callback", "tran_id", tranID, "err", err)
		return httperr.JSON(c, h.Log, "payment success", err)
	}
	h.Log.Info("payment reconciled", "tran_id", tranID)
	return c.JSON(http.StatusOK, echo.Map{"message": "payment successful"})
}

// POST /v1/payment/fail
func (h *Controller) Fail(c echo.Context) error {
	tranID := c.FormValue("tran_id")
	if err := h.Svc.ReconcileFail(c.Request().Context(), tranID); err != nil {
		return httperr.JSON(c, h.Log, "payment fail", err)
	}
	h.Log.Info("payment failed", "tran_id", tranID)
	return c.JSON(http.StatusOK, echo.Map{"message": "payment failed"})
}

// POST /v1/payment/cancel
func (h *Controller) Cancel(c echo.Context) error {
	tranID := c.FormValue("tran_id")
	if err := h.Svc.ReconcileCancel(c.Request().Context(), tranID); err != nil {
		return httperr.JSON(c, h.Log, "payment cancel", err)
	}
	h.Log.Info("payment cancelled", "tran_id", tranID)
	return c.JSON(http.StatusOK, echo.Map{"message": "payment cancelled"})
}
