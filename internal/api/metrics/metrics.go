// Package metrics defines and registers all custom Prometheus metrics for the
// job-board auth core. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "rejected" (bad credentials), or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - result: "success", "rejected" (validation/duplicate), or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// SessionRestoresTotal counts token introspection calls on /auth/me.
// Label:
//   - result: "success", "invalid", "revoked", or "error"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restore checks, by result.",
	},
	[]string{"result"},
)

// ── Route guard metrics ───────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes.
// Label:
//   - decision: "allow", "login_redirect", "role_redirect", or "strip"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by decision.",
	},
	[]string{"decision"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuthEventsRecordedTotal counts audit events successfully persisted.
// Label:
//   - type: "login", "register", or "logout"
var AuthEventsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_recorded_total",
		Help:      "Total number of auth audit events persisted, by type.",
	},
	[]string{"type"},
)

// AuditQueueDepth tracks the current number of events waiting in each audit
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of auth events pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)
