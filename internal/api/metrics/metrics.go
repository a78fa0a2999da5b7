// Package metrics defines and registers all custom Prometheus metrics for
// the employee API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employee_api"

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordsMutatedTotal counts successful record mutations.
// Labels:
//   - operation: "create", "update" or "delete"
//   - role: role of the acting identity ("admin" or "user")
var RecordsMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_mutated_total",
		Help:      "Total number of successful employee record mutations, by operation and actor role.",
	},
	[]string{"operation", "role"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDeliveredTotal counts events handed to an admin subscriber's
// send buffer.
// Label:
//   - type: notification type (RECORD_ADDED, RECORD_UPDATED, RECORD_DELETED)
var NotificationsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Total number of notifications delivered to admin subscribers.",
	},
	[]string{"type"},
)

// NotificationsDroppedTotal counts events dropped because a subscriber's
// send buffer was full.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications dropped due to slow subscribers.",
	},
)

// AdminSubscribers tracks the current size of the admin broadcast group.
var AdminSubscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "admin_subscribers",
		Help:      "Current number of websocket connections joined to the admin broadcast group.",
	},
)
