package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/habitaly/portal/internal/api/metrics"
	"github.com/habitaly/portal/internal/core/domain"
)

// guardResponse tells the front-end where to send the user when a guarded
// route rejects the request. From carries the originally requested location
// so login can return there afterwards.
type guardResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
	From     string `json:"from,omitempty"`
}

// loginRedirect rejects the request and sends the user to login, carrying
// the originally requested location so login can return there afterwards.
// Both Auth and Guard rejections funnel through here: whichever link of the
// chain turns the request away, the front-end sees the same payload.
func loginRedirect(c echo.Context) error {
	metrics.GuardDecisionsTotal.WithLabelValues("login_redirect").Inc()
	return c.JSON(http.StatusUnauthorized, guardResponse{
		Error:    "authentication required",
		Redirect: "/login",
		From:     c.Request().URL.RequestURI(),
	})
}

// Guard is the route guard: it admits the request only when an
// authenticated role is present and inside the allow-set. An empty
// allow-set admits every role. Must run after Auth on routes requiring a
// session; on its own (no role in context) every request redirects to
// login.
func Guard(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	if len(allowed) == 0 {
		for _, r := range domain.AllRoles {
			allowed[r] = struct{}{}
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == "" {
				return loginRedirect(c)
			}

			if _, ok := allowed[domain.Role(role)]; !ok {
				metrics.GuardDecisionsTotal.WithLabelValues("forbidden").Inc()
				return c.JSON(http.StatusForbidden, guardResponse{
					Error:    "role not permitted",
					Redirect: "/unauthorized",
				})
			}

			metrics.GuardDecisionsTotal.WithLabelValues("authorized").Inc()
			return next(c)
		}
	}
}
