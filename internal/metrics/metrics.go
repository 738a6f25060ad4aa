// Package metrics defines Prometheus metrics for the VG core service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vgcore_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vgcore_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vgcore_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	// NodesVisitedTotal is a per-handler counter of visited nodes. It is
	// registered below, but no code in this module increments it.
	NodesVisitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vgcore_nodes_visited_total",
			Help: "Total nodes visited across engine operations, by handler",
		},
		[]string{"handler"},
	)

	// SafetyLimitHitsTotal is a per-handler, per-limit counter of
	// safety-layer terminations. It is registered below, but no code in this
	// module increments it.
	SafetyLimitHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vgcore_safety_limit_hits_total",
			Help: "Total times a handler hit a safety limit, by handler and limit",
		},
		[]string{"handler", "limit"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		NodesVisitedTotal, SafetyLimitHitsTotal,
	)
}
