// Package metrics defines the custom Prometheus metrics of the Broday freight
// API. It is the single source of truth for metric names, labels, and help
// strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "broday"

// ── Frete lifecycle metrics ───────────────────────────────────────────────────

// FretesCreatedTotal counts newly created fretes.
// Label:
//   - origin_state: UF of the pickup address (e.g. "PR")
var FretesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fretes_created_total",
		Help:      "Total number of fretes created, by origin state.",
	},
	[]string{"origin_state"},
)

// FreteTransitionsTotal counts recorded lifecycle transitions.
// Labels:
//   - from: previous status, or "none" on creation
//   - to: resulting status
//   - role: role of the actor (cliente, motorista, admin)
var FreteTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frete_transitions_total",
		Help:      "Total number of frete status transitions.",
	},
	[]string{"from", "to", "role"},
)

// AcceptConflictsTotal counts accept attempts lost to another driver.
var AcceptConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frete_accept_conflicts_total",
		Help:      "Total number of accept attempts that lost the race for a frete.",
	},
)

// LifecycleErrorsTotal counts requests rejected with a domain error.
// Label:
//   - kind: validation, not_found, forbidden, invalid_state, deadline,
//     no_vehicle, conflict or internal
var LifecycleErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lifecycle_errors_total",
		Help:      "Total number of requests rejected, by error kind.",
	},
	[]string{"kind"},
)

// ── Audit dispatcher metrics ──────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts audit events discarded because a worker
// channel was full or the dispatcher was stopped.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped before persistence.",
	},
)

// AuditWriteDuration measures how long persisting one audit event takes.
// Label:
//   - result: "ok" or "error"
var AuditWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of audit event persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
