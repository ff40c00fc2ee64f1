package review

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rjmahfuztech/nesthunt/app/echoServer/httperr"
	"github.com/rjmahfuztech/nesthunt/app/echoServer/jwtx"
	reviewsvc "github.com/rjmahfuztech/nesthunt/service/review"
)

// CreateReviewReq represents a renter's review payload
// swagger:model CreateReviewReq
type CreateReviewReq struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required"`
}

type Controller struct {
	Svc reviewsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/advertisements/:id/reviews
func (h *Controller) Create(c echo.Context) error {
	advertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	rv, err := h.Svc.Create(c.Request().Context(), advertID, jwtx.Principal(c).ID, req.Rating, req.Comment)
	if err != nil {
		return httperr.JSON(c, h.Log, "review create", err)
	}
	return c.JSON(http.StatusCreated, rv)
}

// GET /v1/advertisements/:id/reviews
func (h *Controller) List(c echo.Context) error {
	advertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.ListForAdvertisement(c.Request().Context(), advertID)
	if err != nil {
		return httperr.JSON(c, h.Log, "review list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
