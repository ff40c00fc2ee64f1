package advertisement

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rjmahfuztech/nesthunt/app/echoServer/httperr"
	"github.com/rjmahfuztech/nesthunt/app/echoServer/jwtx"
	"github.com/rjmahfuztech/nesthunt/model"
	advsvc "github.com/rjmahfuztech/nesthunt/service/advertisement"
)

type Controller struct {
	Svc advsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/advertisements
func (h *Controller) Create(c echo.Context) error {
	var req CreateAdvertisementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	p := jwtx.Principal(c)
	a, err := h.Svc.Create(c.Request().Context(), p.ID, advsvc.CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		RentalAmount:  req.RentalAmount,
		Location:      req.Location,
		Bedroom:       req.Bedroom,
		Bathroom:      req.Bathroom,
		ApartmentSize: req.ApartmentSize,
	})
	if err != nil {
		return httperr.JSON(c, h.Log, "advertisement create", err)
	}
	return c.JSON(http.StatusCreated, a)
}

// GET /v1/advertisements
func (h *Controller) List(c echo.Context) error {
	f := model.AdvertFilter{
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
	}
	if v, err := strconv.Atoi(c.QueryParam("bedroom")); err == nil {
		f.Bedroom = v
	}
	if v, err := strconv.Atoi(c.QueryParam("bathroom")); err == nil {
		f.Bathroom = v
	}

	rows, err := h.Svc.List(c.Request().Context(), f, jwtx.Principal(c))
	if err != nil {
		return httperr.JSON(c, h.Log, "advertisement list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/advertisements/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	a, err := h.Svc.Get(c.Request().Context(), id, jwtx.Principal(c))
	if err != nil {
		return httperr.JSON(c, h.Log, "advertisement detail", err)
	}
	return c.JSON(http.StatusOK, a)
}

// GET /v1/my/advertisements
func (h *Controller) Mine(c echo.Context) error {
	rows, err := h.Svc.Mine(c.Request().Context(), jwtx.Principal(c).ID)
	if err != nil {
		return httperr.JSON(c, h.Log, "my advertisements", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// PUT /v1/my/advertisements/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateAdvertisementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	a, err := h.Svc.Update(c.Request().Context(), id, jwtx.Principal(c), advsvc.CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		RentalAmount:  req.RentalAmount,
		Location:      req.Location,
		Bedroom:       req.Bedroom,
		Bathroom:      req.Bathroom,
		ApartmentSize: req.ApartmentSize,
	})
	if err != nil {
		return httperr.JSON(c, h.Log, "advertisement update", err)
	}
	return c.JSON(http.StatusOK, a)
}

// PATCH /v1/advertisements/:id/status  (staff)
func (h *Controller) Moderate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ModerateAdvertisementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	if err := h.Svc.Moderate(c.Request().Context(), id, jwtx.Principal(c), model.AdvertStatus(req.Status)); err != nil {
		return httperr.JSON(c, h.Log, "advertisement moderate", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
}

// DELETE /v1/my/advertisements/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id, jwtx.Principal(c)); err != nil {
		return httperr.JSON(c, h.Log, "advertisement delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
