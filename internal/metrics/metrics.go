package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the portal backend
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Workflow Metrics
	WorkflowOpsTotal     prometheus.CounterVec
	WorkflowFailures     prometheus.CounterVec
	IdentityLookupsTotal prometheus.Counter

	// Cache Metrics
	ViewInvalidationsTotal prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "portal_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			// The route pattern is only known after the handler runs, so
			// in-flight requests are tracked per method.
			[]string{"method"},
		),

		WorkflowOpsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_workflow_operations_total",
				Help: "Total workflow operations by entity kind and operation",
			},
			[]string{"entity", "operation"},
		),
		WorkflowFailures: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_workflow_failures_total",
				Help: "Structured workflow failures by entity kind and failure code",
			},
			[]string{"entity", "code"},
		),
		IdentityLookupsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "portal_identity_lookups_total",
				Help: "Fresh caller resolutions against the identity provider",
			},
		),

		ViewInvalidationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_view_invalidations_total",
				Help: "View cache invalidations by view key",
			},
			[]string{"view"},
		),
	}
}
