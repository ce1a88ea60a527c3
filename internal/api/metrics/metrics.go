// Package metrics defines and registers all custom Prometheus metrics for
// the backend. It is the single source of truth for metric names, labels,
// and help strings. Everything registers with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "doughmination"

// ── Realtime metrics ─────────────────────────────────────────────────────────

// WSConnections tracks the number of currently registered websocket clients.
var WSConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections",
		Help:      "Current number of registered websocket connections.",
	},
)

// BroadcastsTotal counts broadcast events emitted, labelled by event type.
var BroadcastsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_broadcasts_total",
		Help:      "Total number of broadcast events emitted, by event type.",
	},
	[]string{"type"},
)

// PrunedConnectionsTotal counts connections dropped after a failed delivery.
var PrunedConnectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_pruned_connections_total",
		Help:      "Total number of dead websocket connections pruned during broadcast.",
	},
)

// ── Upstream metrics ─────────────────────────────────────────────────────────

// UpstreamRequestDuration measures latency of calls to the system-tracking API.
// Labels:
//   - endpoint: logical operation name (e.g. "members", "fronters", "switch")
//   - outcome: "ok" or "error"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the upstream system-tracking API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "outcome"},
)

// MemberCacheTotal counts member-cache lookups, labelled hit/miss.
var MemberCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "member_cache_total",
		Help:      "Total number of member cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
