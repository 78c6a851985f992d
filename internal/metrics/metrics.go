// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RowsAnalyzed counts analysis calls by result (success, failure, cancelled).
	RowsAnalyzed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "runsheet_rows_analyzed_total",
		Help: "Total row analysis calls by result",
	}, []string{"result"})

	// AnalysisDuration tracks provider latency.
	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "runsheet_analysis_duration_seconds",
		Help:    "Analysis provider call duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	})

	// RowsApproved counts approvals by outcome (applied, duplicate, confirmation_required).
	RowsApproved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "runsheet_rows_approved_total",
		Help: "Total row approvals by outcome",
	}, []string{"outcome"})

	// PendingTransfers tracks unresolved pending transfers after the latest approval.
	PendingTransfers = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "runsheet_pending_transfers",
		Help:    "Unresolved pending transfers after each approval",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	})

	// SessionsCompleted counts sessions whose last row was approved.
	SessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "runsheet_sessions_completed_total",
		Help: "Total sessions completed",
	})

	// ActiveSessions is the number of sessions held in memory.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "runsheet_active_sessions",
		Help: "Sessions currently held in memory",
	})

	// HTTPRequests counts API requests by method, route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "runsheet_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	// HTTPDuration tracks API latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "runsheet_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)
