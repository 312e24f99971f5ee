package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/habitaly/portal/internal/core/domain"
	"github.com/habitaly/portal/pkg/logger"
)

type stubCountsRepo struct {
	counts domain.BadgeCounts
	err    error
}

func (r *stubCountsRepo) BadgeCounts(_ context.Context, _ string) (domain.BadgeCounts, error) {
	return r.counts, r.err
}

func withIdentity(c echo.Context, userID string, role domain.Role) {
	c.Set("user_id", userID)
	c.Set("role", string(role))
}

func TestDashboardHandler_Nav(t *testing.T) {
	logger.Reset()
	log := logger.Init(logger.Options{Level: "error"})

	repo := &stubCountsRepo{counts: domain.BadgeCounts{Favorites: 3, Contracts: 1, UnreadNotifications: 2}}
	h := NewDashboardHandler(repo, log)

	c, rec := newTestContext(t, http.MethodGet, "/dashboard/nav", "")
	withIdentity(c, "u-1", domain.RoleClient)

	if err := h.Nav(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Role  string           `json:"role"`
		Items []domain.NavItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Role != "client" {
		t.Fatalf("unexpected role: %s", resp.Role)
	}
	if len(resp.Items) == 0 {
		t.Fatalf("expected nav items")
	}
	last := resp.Items[len(resp.Items)-1]
	if last.ID != domain.PanelNotifications || last.Badge != 2 {
		t.Fatalf("unexpected last item: %+v", last)
	}
}

func TestDashboardHandler_Nav_CountsFailureDegradesToZero(t *testing.T) {
	logger.Reset()
	log := logger.Init(logger.Options{Level: "error"})

	repo := &stubCountsRepo{err: errors.New("mongo down")}
	h := NewDashboardHandler(repo, log)

	c, rec := newTestContext(t, http.MethodGet, "/dashboard/nav", "")
	withIdentity(c, "u-1", domain.RoleAgent)

	if err := h.Nav(c); err != nil {
		t.Fatalf("counting failure must not fail the menu: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Items []domain.NavItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, it := range resp.Items {
		if it.Badge != 0 {
			t.Fatalf("expected zero badges on counting failure, got %+v", it)
		}
	}
}

func TestDashboardHandler_Nav_MissingIdentity(t *testing.T) {
	logger.Reset()
	log := logger.Init(logger.Options{Level: "error"})

	h := NewDashboardHandler(&stubCountsRepo{}, log)

	c, _ := newTestContext(t, http.MethodGet, "/dashboard/nav", "")
	err := h.Nav(c)
	if err == nil {
		t.Fatalf("expected error without auth claims")
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestDashboardHandler_Panel_Restricted(t *testing.T) {
	logger.Reset()
	log := logger.Init(logger.Options{Level: "error"})

	h := NewDashboardHandler(&stubCountsRepo{}, log)

	c, rec := newTestContext(t, http.MethodGet, "/dashboard/panels/users", "")
	c.SetParamNames("tab")
	c.SetParamValues("users")
	withIdentity(c, "u-1", domain.RoleClient)

	if err := h.Panel(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("restricted panel must not fail, got %d", rec.Code)
	}

	var p domain.Panel
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if p.State != domain.PanelNotAvailable {
		t.Fatalf("expected not_available, got %s", p.State)
	}
}

func TestDashboardHandler_Panel_Unknown(t *testing.T) {
	logger.Reset()
	log := logger.Init(logger.Options{Level: "error"})

	h := NewDashboardHandler(&stubCountsRepo{}, log)

	c, rec := newTestContext(t, http.MethodGet, "/dashboard/panels/mystery", "")
	c.SetParamNames("tab")
	c.SetParamValues("mystery")
	withIdentity(c, "u-1", domain.RoleAdmin)

	if err := h.Panel(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown panel must not fail, got %d", rec.Code)
	}

	var p domain.Panel
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if p.State != domain.PanelNotImplemented {
		t.Fatalf("expected not_implemented, got %s", p.State)
	}
}
