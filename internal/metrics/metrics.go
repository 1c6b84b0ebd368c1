// Package metrics exposes Prometheus instrumentation for the calculator API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CalculationRequests counts calculator invocations by outcome.
	CalculationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_requests_total",
			Help: "Total number of calculator requests",
		},
		[]string{"calculator", "status"},
	)

	// CalculationErrors counts rejected calculator inputs.
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Number of calculator requests rejected by validation",
		},
		[]string{"calculator", "reason"},
	)

	// RequestDuration observes wall-clock request handling time per endpoint.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)
