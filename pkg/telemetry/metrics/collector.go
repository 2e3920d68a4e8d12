package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"telescope-hq/callisto/pkg/registry/diag"
)

// Collector manages callisto's Prometheus metrics on a private registry.
type Collector struct {
	registry *prometheus.Registry

	runsTotal    *prometheus.CounterVec
	runDuration  prometheus.Histogram
	filesTotal   prometheus.Counter
	diagnostics  *prometheus.CounterVec
	lastRunTime  prometheus.Gauge
	lastRunClean prometheus.Gauge
}

// NewCollector creates a metrics collector. If registry is nil a private
// registry is created.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callisto",
			Name:      "validation_runs_total",
			Help:      "Validation runs by outcome (clean, errors).",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "callisto",
			Name:      "validation_run_duration_seconds",
			Help:      "Wall-clock duration of a full validation run.",
			// Registry files are small; runs finish in milliseconds unless
			// the tree is huge.
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		filesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "callisto",
			Name:      "validated_files_total",
			Help:      "Registry files validated across all runs.",
		}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callisto",
			Name:      "diagnostics_total",
			Help:      "Diagnostics emitted, by rule and severity.",
		}, []string{"rule", "severity"}),
		lastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "callisto",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the most recent validation run.",
		}),
		lastRunClean: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "callisto",
			Name:      "last_run_clean",
			Help:      "1 when the most recent run had no errors, else 0.",
		}),
	}

	registry.MustRegister(
		c.runsTotal,
		c.runDuration,
		c.filesTotal,
		c.diagnostics,
		c.lastRunTime,
		c.lastRunClean,
	)
	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordRun records one completed validation run.
func (c *Collector) RecordRun(report *diag.Report, files int, duration time.Duration) {
	outcome := "clean"
	clean := 1.0
	if report.HasErrors() {
		outcome = "errors"
		clean = 0
	}
	c.runsTotal.WithLabelValues(outcome).Inc()
	c.runDuration.Observe(duration.Seconds())
	c.filesTotal.Add(float64(files))
	c.lastRunTime.SetToCurrentTime()
	c.lastRunClean.Set(clean)

	for _, d := range report.Diagnostics {
		c.diagnostics.WithLabelValues(string(d.Rule), string(d.Severity)).Inc()
	}
}
