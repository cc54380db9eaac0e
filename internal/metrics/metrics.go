package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Backend Metrics
var (
	// BackendRequestsTotal tracks requests to the conference backend by operation and status
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confadmin_backend_requests_total",
			Help: "Total conference backend requests by operation and status",
		},
		[]string{"operation", "status"},
	)

	// BackendRequestDuration tracks backend request latency in seconds
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "confadmin_backend_request_duration_seconds",
			Help:    "Conference backend request duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)
)

// Store Metrics
var (
	// ConferencesLoaded tracks how many conferences the store currently holds
	ConferencesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "confadmin_conferences_loaded",
			Help: "Number of conferences held in memory",
		},
	)

	// SyncFailuresTotal tracks optimistic edits whose push to the backend failed
	SyncFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confadmin_sync_failures_total",
			Help: "Local edits that were not persisted by the backend, by operation",
		},
		[]string{"operation"},
	)
)
