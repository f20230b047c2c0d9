// Package metrics provides Prometheus metrics for launch fetches and shape
// validation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for FetchesTotal.
const (
	OutcomeOK        = "ok"
	OutcomeStatus    = "status"
	OutcomeTransport = "transport"
	OutcomeDecode    = "decode"
	OutcomeMismatch  = "mismatch"
)

// Collector holds the Prometheus metrics for the client and server.
type Collector struct {
	// Fetch metrics
	FetchesTotal    *prometheus.CounterVec
	FetchDuration   *prometheus.HistogramVec
	FetchesInFlight prometheus.Gauge

	// Validation metrics
	ShapeMismatches *prometheus.CounterVec

	// Server metrics
	RequestsTotal *prometheus.CounterVec
}

// New creates a collector registered with the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a collector registered with reg. Tests use a fresh
// registry to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "launchcast",
				Name:      "fetches_total",
				Help:      "Total number of launch API fetches by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "launchcast",
				Name:      "fetch_duration_seconds",
				Help:      "Launch API fetch duration in seconds",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"endpoint"},
		),
		FetchesInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "launchcast",
				Name:      "fetches_in_flight",
				Help:      "Number of launch API fetches currently running",
			},
		),
		ShapeMismatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "launchcast",
				Name:      "shape_mismatches_total",
				Help:      "Total number of documents rejected by the validator",
			},
			[]string{"schema", "code"},
		),
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "launchcast",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"route", "status"},
		),
	}
}
