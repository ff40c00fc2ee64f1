package favourite

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rjmahfuztech/nesthunt/app/echoServer/httperr"
	"github.com/rjmahfuztech/nesthunt/app/echoServer/jwtx"
	favsvc "github.com/rjmahfuztech/nesthunt/service/favourite"
)

// CreateFavouriteReq represents the save-advertisement payload
// swagger:model CreateFavouriteReq
type CreateFavouriteReq struct {
	AdvertisementID string `json:"advertisement_id" validate:"required,uuid4"`
}

type Controller struct {
	Svc favsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/my/favourites
func (h *Controller) Create(c echo.Context) error {
	var req CreateFavouriteReq
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

	f, err := h.Svc.Add(c.Request().Context(), advertID, jwtx.Principal(c).ID)
	if err != nil {
		return httperr.JSON(c, h.Log, "favourite add", err)
	}
	return c.JSON(http.StatusCreated, f)
}

// GET /v1/my/favourites
func (h *Controller) Mine(c echo.Context) error {
	rows, err := h.Svc.Mine(c.Request().Context(), jwtx.Principal(c).ID)
	if err != nil {
		return httperr.JSON(c, h.Log, "my favourites", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// DELETE /v1/my/favourites/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Remove(c.Request().Context(), id, jwtx.Principal(c).ID); err != nil {
		return httperr.JSON(c, h.Log, "favourite remove", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "favourite removed"})
}
