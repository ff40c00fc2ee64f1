package rentrequest

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rjmahfuztech/nesthunt/app/echoServer/httperr"
	"github.com/rjmahfuztech/nesthunt/app/echoServer/jwtx"
	"github.com/rjmahfuztech/nesthunt/model"
	rrsvc "github.com/rjmahfuztech/nesthunt/service/rentrequest"
)

type Controller struct {
	Svc rrsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/my/rent-requests
func (h *Controller) Create(c echo.Context) error {
	var req CreateRentRequestReq
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

	rr, err := h.Svc.Submit(c.Request().Context(), advertID, jwtx.Principal(c).ID)
	if err != nil {
		return httperr.JSON(c, h.Log, "rent request submit", err)
	}
	return c.JSON(http.StatusCreated, rr)
}

// GET /v1/my/rent-requests
func (h *Controller) Mine(c echo.Context) error {
	rows, err := h.Svc.Mine(c.Request().Context(), jwtx.Principal(c).ID)
	if err != nil {
		return httperr.JSON(c, h.Log, "my rent requests", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// DELETE /v1/my/rent-requests/:id
func (h *Controller) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Cancel(c.Request().Context(), id, jwtx.Principal(c).ID); err != nil {
		return httperr.JSON(c, h.Log, "rent request cancel", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rent request deleted"})
}

// GET /v1/advertisements/:id/rent-requests  (owner or staff)
func (h *Controller) ListForAdvertisement(c echo.Context) error {
	advertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.ListForAdvertisement(c.Request().Context(), advertID, jwtx.Principal(c))
	if err != nil {
		return httperr.JSON(c, h.Log, "rent request list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// PATCH /v1/rent-requests/:id  (owner or staff)
func (h *Controller) Decide(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req DecideRentRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	if err := h.Svc.Decide(c.Request().Context(), id, jwtx.Principal(c), model.RequestStatus(req.Status)); err != nil {
		return httperr.JSON(c, h.Log, "rent request decide", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rent request " + req.Status})
}
