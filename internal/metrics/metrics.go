// Package metrics defines all custom Prometheus metrics for the MotoFlow web
// dashboard. It is the single source of truth for metric names, labels, and
// help strings; the echoprometheus middleware covers the inbound HTTP surface
// separately.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "motoflow"

// ── Backend gateway metrics ───────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the service backend.
// Labels:
//   - operation: the gateway operation (e.g. "login", "list_orders")
//   - outcome: "ok", "api_error", or "unreachable"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the service backend.",
	},
	[]string{"operation", "outcome"},
)

// BackendRequestDuration measures backend round-trip time per operation.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of service backend requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsStartedTotal counts successful logins.
var SessionsStartedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Total number of sessions established by login.",
	},
)

// SessionsEndedTotal counts session terminations.
// Label:
//   - reason: "logout", "expired", or "malformed"
var SessionsEndedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_ended_total",
		Help:      "Total number of sessions ended, by reason.",
	},
	[]string{"reason"},
)
