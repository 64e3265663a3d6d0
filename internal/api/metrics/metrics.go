// Package metrics defines and registers the custom Prometheus metrics of the
// credit card application API. HTTP request metrics come from echoprometheus;
// the counters here describe domain outcomes.
//
// All metrics register with the default Prometheus registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cardapply"

// ── Account metrics ───────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - result: "created", "conflict", "invalid" or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "invalid" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ProfileUpdatesTotal counts profile updates.
// Label:
//   - result: "modified", "unchanged", "invalid" or "error"
var ProfileUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_updates_total",
		Help:      "Total number of profile update requests, by result.",
	},
	[]string{"result"},
)

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsTotal counts card applications.
// Label:
//   - result: "created", "replayed" (Idempotency-Key hit), "invalid" or "error"
var ApplicationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_total",
		Help:      "Total number of card application requests, by result.",
	},
	[]string{"result"},
)

// ApplicationsListed observes how many applications a single list call returned.
var ApplicationsListed = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "applications_listed",
		Help:      "Number of applications returned per list request.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
	},
)
