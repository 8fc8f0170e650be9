// Package metrics defines the business Prometheus metrics of the course API.
// All metrics register with the default registry on package init. HTTP
// request metrics come from echoprometheus, mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric the service exports.
const Namespace = "course_market"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts successful signups.
// Label:
//   - role: "admin" or "user"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - role: "admin" or "user"
//   - result: "success", "unknown_user", "wrong_password", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// GateRejectionsTotal counts requests refused by the token gate.
// Labels:
//   - role: the role the gate protects
//   - reason: "missing_header", "invalid_token", "role_mismatch"
var GateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "gate_rejections_total",
		Help:      "Total number of requests rejected by the token gate.",
	},
	[]string{"role", "reason"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CoursesWrittenTotal counts catalog writes.
// Label:
//   - op: "create" or "update"
var CoursesWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "courses_written_total",
		Help:      "Total number of course create/update operations.",
	},
	[]string{"op"},
)

// PurchasesTotal counts purchase attempts that reached the ledger.
// Label:
//   - result: "purchased" or "already_purchased"
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "purchases_total",
		Help:      "Total number of purchase attempts, by result.",
	},
	[]string{"result"},
)
