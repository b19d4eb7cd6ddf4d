// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Simulation metrics
	SimulationsTotal   *prometheus.CounterVec
	SimulationErrors   *prometheus.CounterVec
	SimulationDuration prometheus.Histogram
	DaysSimulated      prometheus.Counter
	ComparisonsTotal   prometheus.Counter

	// Registry metrics
	RunsStored prometheus.Gauge

	// Export metrics
	ExportsTotal *prometheus.CounterVec

	// Live session metrics
	LiveSessionsActive prometheus.Gauge
	LiveMessages       *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "tokenomics_lab"
	}

	return &Metrics{
		// Simulation metrics
		SimulationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "runs_total",
			Help:      "Total number of simulation runs by trigger",
		}, []string{"trigger"}),
		SimulationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "errors_total",
			Help:      "Total number of failed simulation runs by reason",
		}, []string{"reason"}),
		SimulationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "duration_seconds",
			Help:      "Simulation execution duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		DaysSimulated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "days_total",
			Help:      "Total number of days simulated across all runs",
		}),
		ComparisonsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "comparisons_total",
			Help:      "Total number of comparison requests",
		}),

		// Registry metrics
		RunsStored: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "runs_stored",
			Help:      "Current number of runs held in the session registry",
		}),

		// Export metrics
		ExportsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "exports_total",
			Help:      "Total number of exports by format",
		}, []string{"format"}),

		// Live session metrics
		LiveSessionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "sessions_active",
			Help:      "Current number of open live sessions",
		}),
		LiveMessages: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "messages_total",
			Help:      "Total number of live session messages by type",
		}, []string{"type"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordSimulation records a completed simulation run.
func RecordSimulation(trigger string, days int, durationSeconds float64) {
	DefaultMetrics.SimulationsTotal.WithLabelValues(trigger).Inc()
	DefaultMetrics.SimulationDuration.Observe(durationSeconds)
	DefaultMetrics.DaysSimulated.Add(float64(days))
}

// RecordSimulationError records a failed simulation run.
func RecordSimulationError(reason string) {
	DefaultMetrics.SimulationErrors.WithLabelValues(reason).Inc()
}

// RecordComparison increments the comparison counter.
func RecordComparison() {
	DefaultMetrics.ComparisonsTotal.Inc()
}

// RecordExport records an export by format ("csv", "json", "markdown").
func RecordExport(format string) {
	DefaultMetrics.ExportsTotal.WithLabelValues(format).Inc()
}

// UpdateRunsStored updates the registry size gauge.
func UpdateRunsStored(n int) {
	DefaultMetrics.RunsStored.Set(float64(n))
}

// SessionOpened increments the active live session gauge.
func SessionOpened() {
	DefaultMetrics.LiveSessionsActive.Inc()
}

// SessionClosed decrements the active live session gauge.
func SessionClosed() {
	DefaultMetrics.LiveSessionsActive.Dec()
}

// RecordLiveMessage records one live session message, either direction.
func RecordLiveMessage(msgType string) {
	DefaultMetrics.LiveMessages.WithLabelValues(msgType).Inc()
}
