// Package metrics defines and registers all custom Prometheus metrics for
// the portal. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time and
// are served through the echoprometheus handler mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Session metrics ──────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - provider: "password", "google", or "facebook"
//   - result: "success", "invalid_credentials", "superseded", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by provider and result.",
	},
	[]string{"provider", "result"},
)

// SessionRestoresTotal counts startup session restores.
// Label:
//   - result: "restored" or "no_session"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restore attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logout requests, including idempotent repeats.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout requests.",
	},
)

// PasswordResetsTotal counts reset-flow operations.
// Labels:
//   - stage: "forgot" or "reset"
//   - result: "ok", "validation", or "invalid_token"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset operations, by stage and result.",
	},
	[]string{"stage", "result"},
)

// ── Access metrics ───────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes.
// Label:
//   - outcome: "authorized", "login_redirect", or "forbidden"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"outcome"},
)

// NavRequestsTotal counts navigation menu builds, by role.
var NavRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "nav_requests_total",
		Help:      "Total number of navigation menu requests, by role.",
	},
	[]string{"role"},
)
