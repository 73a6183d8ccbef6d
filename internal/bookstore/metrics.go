package bookstore

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for API traffic.
type Metrics struct {
	Registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ErrorsTotal     *prometheus.CounterVec
}

// NewMetrics constructs and registers all collectors on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaflet_api_requests_total",
			Help: "Total bookstore API requests issued.",
		},
		[]string{"endpoint"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leaflet_api_request_duration_seconds",
			Help:    "Bookstore API request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaflet_api_errors_total",
			Help: "Bookstore API failures by kind.",
		},
		[]string{"endpoint", "kind"},
	)

	registry.MustRegister(requests, duration, errorsTotal)

	return &Metrics{
		Registry:        registry,
		RequestsTotal:   requests,
		RequestDuration: duration,
		ErrorsTotal:     errorsTotal,
	}
}

// IncRequest increments the request counter for an endpoint.
func (m *Metrics) IncRequest(endpoint string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(endpoint).Inc()
}

// ObserveDuration records a request latency.
func (m *Metrics) ObserveDuration(endpoint string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// IncError increments the error counter for an endpoint and failure kind.
func (m *Metrics) IncError(endpoint, kind string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(endpoint, kind).Inc()
}
