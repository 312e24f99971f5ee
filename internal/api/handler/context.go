package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/habitaly/portal/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: a present, valid
// role proves the middleware ran. Reaching a guarded handler without one
// is a wiring bug, not user input, and is rejected loudly.
func ctxIdentity(c echo.Context) (userID string, role domain.Role, err error) {
	rawRole, _ := c.Get("role").(string)
	role = domain.Role(rawRole)
	if !role.Valid() {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}

	return userID, role, nil
}
