package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// simulation engine and the optional Kafka request worker.
type Metrics struct {
	SimulationsTotal   prometheus.Counter
	SimulationErrors   prometheus.Counter
	SimulationDuration prometheus.Histogram
	SampleCount        prometheus.Histogram
	LastCapacityFactor prometheus.Gauge

	// Kafka request worker metrics.
	RequestsConsumed   prometheus.Counter
	RequestErrors      prometheus.Counter
	SummariesPublished prometheus.Counter
	WorkerRunning      prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SimulationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "turbine_sim",
			Name:      "simulations_total",
			Help:      "Total completed simulation runs.",
		}),
		SimulationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "turbine_sim",
			Name:      "simulation_errors_total",
			Help:      "Total simulation runs rejected for invalid parameters.",
		}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "turbine_sim",
			Name:      "simulation_duration_seconds",
			Help:      "Duration of a complete sample-map-aggregate run.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		SampleCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "turbine_sim",
			Name:      "sample_count",
			Help:      "Wind speed population size per simulation run.",
			Buckets:   []float64{1_000, 5_000, 10_000, 25_000, 50_000, 100_000, 1_000_000},
		}),
		LastCapacityFactor: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "turbine_sim",
			Name:      "last_capacity_factor",
			Help:      "Capacity factor of the most recent simulation run.",
		}),
		RequestsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "turbine_sim",
			Name:      "requests_consumed_total",
			Help:      "Total simulation requests read from the request topic.",
		}),
		RequestErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "turbine_sim",
			Name:      "request_errors_total",
			Help:      "Total request messages skipped as malformed or invalid.",
		}),
		SummariesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "turbine_sim",
			Name:      "summaries_published_total",
			Help:      "Total run summaries written to the summary topic.",
		}),
		WorkerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "turbine_sim",
			Name:      "worker_running",
			Help:      "1 when the Kafka request worker is active, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.SimulationsTotal,
		m.SimulationErrors,
		m.SimulationDuration,
		m.SampleCount,
		m.LastCapacityFactor,
		m.RequestsConsumed,
		m.RequestErrors,
		m.SummariesPublished,
		m.WorkerRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SimulationsTotal:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "turbine_sim", Name: "simulations_total"}),
		SimulationErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "turbine_sim", Name: "simulation_errors_total"}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "turbine_sim", Name: "simulation_duration_seconds"}),
		SampleCount:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "turbine_sim", Name: "sample_count"}),
		LastCapacityFactor: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "turbine_sim", Name: "last_capacity_factor"}),
		RequestsConsumed:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "turbine_sim", Name: "requests_consumed_total"}),
		RequestErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "turbine_sim", Name: "request_errors_total"}),
		SummariesPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "turbine_sim", Name: "summaries_published_total"}),
		WorkerRunning:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "turbine_sim", Name: "worker_running"}),
	}
}
