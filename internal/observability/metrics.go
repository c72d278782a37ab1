package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_dashboard"

// Metrics holds the Prometheus collectors for the forecast route.
type Metrics struct {
	ProviderRequests *prometheus.CounterVec   // labels: provider, outcome={success,error}
	ProviderDuration *prometheus.HistogramVec // labels: provider
	Responses        *prometheus.CounterVec   // labels: source
	Augmentations    *prometheus.CounterVec   // labels: outcome={applied,skipped,error}
	ProviderUp       *prometheus.GaugeVec     // labels: provider; set by the status probe
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ProviderRequests,
		m.ProviderDuration,
		m.Responses,
		m.Augmentations,
		m.ProviderUp,
	)
	return m
}

// NewMetricsForTesting creates unregistered metrics so tests can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Upstream forecast fetches by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Upstream forecast fetch duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		Responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecast_responses_total",
			Help:      "Forecast responses by the source that produced them.",
		}, []string{"source"}),
		Augmentations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecast_augmentations_total",
			Help:      "Attempts to extend a short primary forecast with secondary provider days.",
		}, []string{"outcome"}),
		ProviderUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "provider_up",
			Help:      "1 when the last status probe of the provider succeeded, 0 otherwise.",
		}, []string{"provider"}),
	}
}
