package jwtx

import (
	"github.com/labstack/echo/v4"

	"github.com/rjmahfuztech/nesthunt/util/authz"
)

// Principal reads the identity the auth middleware stashed on the context.
func Principal(c echo.Context) authz.Principal {
	uid, _ := c.Get("user_id").(int64)
	staff, _ := c.Get("is_staff").(bool)
	return authz.Principal{ID: uid, Staff: staff}
}
