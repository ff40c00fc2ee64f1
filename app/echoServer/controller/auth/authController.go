package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/rjmahfuztech/nesthunt/app/echoServer/httperr"
	"github.com/rjmahfuztech/nesthunt/model"
	authsvc "github.com/rjmahfuztech/nesthunt/service/auth"
	"github.com/rjmahfuztech/nesthunt/util/apperr"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/users/register
func (h *Controller) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	u, token, err := h.Svc.Register(c.Request().Context(), req)
	if err != nil {
		return httperr.JSON(c, h.Log, "register", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": u, "token": token})
}

// POST /v1/users/login
func (h *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	u, token, err := h.Svc.Login(c.Request().Context(), req)
	if err != nil {
		// Bad credentials are a 401 rather than the taxonomy default.
		if apperr.CodeOf(err) == apperr.Forbidden {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
		}
		return httperr.JSON(c, h.Log, "login", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u, "token": token})
}
