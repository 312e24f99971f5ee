package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/habitaly/portal/internal/api/metrics"
	"github.com/habitaly/portal/internal/core/domain"
	"github.com/habitaly/portal/internal/core/ports"
)

// DashboardHandler serves the role-scoped navigation menu and dispatches
// dashboard panels.
type DashboardHandler struct {
	counts ports.CountsRepository
	log    zerolog.Logger
}

func NewDashboardHandler(counts ports.CountsRepository, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{counts: counts, log: log}
}

type navResponse struct {
	Role   domain.Role        `json:"role"`
	Items  []domain.NavItem   `json:"items"`
	Counts domain.BadgeCounts `json:"counts"`
}

// Nav returns the navigation menu for the caller's role with live badge
// counts. Badges are presentational: a counting failure degrades to zeros
// instead of failing the menu.
//
// @Summary      Navigation menu
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  navResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard/nav [get]
func (h *DashboardHandler) Nav(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	counts, err := h.counts.BadgeCounts(c.Request().Context(), userID)
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", userID).Msg("badge counts unavailable")
		counts = domain.BadgeCounts{}
	}

	metrics.NavRequestsTotal.WithLabelValues(string(role)).Inc()
	return c.JSON(http.StatusOK, navResponse{
		Role:   role,
		Items:  domain.NavItemsFor(role, counts),
		Counts: counts,
	})
}

// Panel dispatches a dashboard panel by its tab identifier. Restricted and
// unknown tabs resolve to placeholders; the endpoint never fails on the
// tab value.
//
// @Summary      Dashboard panel
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        tab  path      string  true  "Panel identifier"
// @Success      200  {object}  domain.Panel
// @Failure      401  {object}  map[string]string
// @Router       /dashboard/panels/{tab} [get]
func (h *DashboardHandler) Panel(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, domain.ResolvePanel(role, c.Param("tab")))
}
