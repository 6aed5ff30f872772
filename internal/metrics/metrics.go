// Package metrics defines the Prometheus metrics of the persistence layer.
// Every metric is registered with the default registry on import through
// promauto. Handler serves them for scraping, and the CLI mounts it when
// started with --metrics-addr.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "edumentor"

// Result label values.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreOperationsTotal counts store operations.
// Labels:
//   - store: table name of the store (e.g. "posts")
//   - op: operation name (e.g. "find_by_category_id")
//   - result: "ok", "invalid" (rejected by validation) or "error"
var StoreOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operations_total",
		Help:      "Total number of entity store operations, by store, operation and result.",
	},
	[]string{"store", "op", "result"},
)

// StoreOperationDuration measures a store operation from connection checkout
// to release.
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of entity store operations including connection checkout.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"store", "op"},
)

// ── Connection metrics ────────────────────────────────────────────────────────

// ConnectionCheckoutsTotal counts connection checkouts from the provider.
// Label:
//   - result: "ok", "replaced" (first connection failed its ping), "error"
//     or "config_error"
var ConnectionCheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connection_checkouts_total",
		Help:      "Total number of database connection checkouts, by result.",
	},
	[]string{"result"},
)
