// Package metrics defines and registers all custom Prometheus metrics for
// the blog admin panel and its backend API. It is the single source of truth
// for metric names, labels, and help strings.
//
// Metrics are registered with the default registry via promauto; the server
// exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blogadmin"

// ── Panel (client-side cache) metrics ────────────────────────────────────────

// MutationsTotal counts confirmed mutations per entity store.
// Labels:
//   - entity: "user", "category", "post", "comment"
//   - op: "create", "update", "delete"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "panel_mutations_total",
		Help:      "Total number of confirmed create/update/delete mutations, by entity and operation.",
	},
	[]string{"entity", "op"},
)

// RejectionsTotal counts mutations rejected before any network call.
// Labels:
//   - entity: the entity store that rejected the call
//   - reason: "validation" or "business_rule"
var RejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "panel_rejections_total",
		Help:      "Total number of mutations rejected locally, by entity and reason.",
	},
	[]string{"entity", "reason"},
)

// RemoteErrorsTotal counts backend calls that failed.
// Label:
//   - entity: the entity store whose call failed
var RemoteErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "panel_remote_errors_total",
		Help:      "Total number of backend calls that ended in a remote error.",
	},
	[]string{"entity"},
)

// CascadeRefetchesTotal counts refetches dispatched by the mediator.
// Labels:
//   - trigger: the mutation that caused the cascade (e.g. "post_updated")
//   - store: the store being refetched
var CascadeRefetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "panel_cascade_refetches_total",
		Help:      "Total number of cascade refetches dispatched, by trigger and target store.",
	},
	[]string{"trigger", "store"},
)

// ── Backend API metrics ──────────────────────────────────────────────────────

// HTTPRequestsTotal counts handled HTTP requests.
// Labels:
//   - method: HTTP method
//   - path: registered route path
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled, by method, route, and status.",
	},
	[]string{"method", "path", "status"},
)

// ListCacheTotal counts Dto list cache decisions.
// Labels:
//   - collection: "users", "categories", "posts", "comments"
//   - result: "hit" or "miss"
var ListCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_cache_total",
		Help:      "Total number of Dto list cache lookups, labelled by result (hit/miss).",
	},
	[]string{"collection", "result"},
)

// ListQueryDuration measures how long a denormalized list read takes.
// Label:
//   - collection: the entity collection queried
var ListQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "list_query_duration_seconds",
		Help:      "Duration of denormalized list aggregation queries.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"collection"},
)
