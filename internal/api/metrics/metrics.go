// Package metrics defines and registers all custom Prometheus metrics for
// the hostel management API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hostel"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success", "not_found", "bad_password", "throttled", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - outcome: "created", "conflict", "invalid", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// TokenVerificationsTotal counts per-request token checks.
// Label:
//   - result: "ok", "missing", "invalid", "user_gone"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of request token verifications, by result.",
	},
	[]string{"result"},
)

// ── Room metrics ──────────────────────────────────────────────────────────────

// RoomStatusChangesTotal counts room occupancy transitions.
// Label:
//   - status: the new room status ("available", "occupied", "maintenance")
var RoomStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "room_status_changes_total",
		Help:      "Total number of room status transitions, by new status.",
	},
	[]string{"status"},
)
