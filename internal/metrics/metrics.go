// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "todolist_http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "todolist_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	TaskOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "todolist_task_operations_total",
		Help: "Task operations by kind and outcome.",
	}, []string{"operation", "outcome"})

	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "todolist_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	QuoteFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "todolist_quote_fallbacks_total",
		Help: "Quote lookups that fell back to the built-in sentence.",
	})
)
