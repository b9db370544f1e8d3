// Package promexport publishes benchmark snapshots as Prometheus gauges, for
// scraping or for the node_exporter textfile collector.
package promexport

import (
	"math"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NikitaCOEUR/stagebench/pkg/bench"
)

var (
	// ErrInvalidConfig is returned when the exporter configuration is invalid
	ErrInvalidConfig = errors.New("invalid prometheus configuration")

	// ErrRegistrationFailed is returned when a collector cannot be registered
	ErrRegistrationFailed = errors.New("metric registration failed")

	// ErrClosed is returned by exports after Close
	ErrClosed = errors.New("exporter closed")
)

// Config configures an Exporter
type Config struct {
	// Namespace prefixes every metric name. Required.
	Namespace string
	Subsystem string
	// Registry receives the collectors. A private registry is created when nil.
	Registry *prometheus.Registry
}

// Exporter mirrors the last exported snapshot into gauges. Every export
// replaces the series of the previous one for the same kind of data.
type Exporter struct {
	registry *prometheus.Registry

	stageElapsed    *prometheus.GaugeVec
	stageIterations *prometheus.GaugeVec
	stageErrors     *prometheus.GaugeVec
	stageOps        *prometheus.GaugeVec
	stageSpeed      *prometheus.GaugeVec

	latency    *prometheus.GaugeVec
	latencyOps *prometheus.GaugeVec

	checkpointTotal *prometheus.GaugeVec
	checkpointShare *prometheus.GaugeVec
	perfIterations  prometheus.Gauge

	collectors []prometheus.Collector

	mu     sync.Mutex
	closed bool
}

// New creates an exporter and registers its collectors
func New(cfg Config) (*Exporter, error) {
	if cfg.Namespace == "" {
		return nil, errors.Wrap(ErrInvalidConfig, "namespace is required")
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	gauge := func(name, help string, labels ...string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      name,
			Help:      help,
		}, labels)
	}

	e := &Exporter{
		registry:        registry,
		stageElapsed:    gauge("stage_elapsed_seconds", "Accumulated elapsed time of a stage", "stage"),
		stageIterations: gauge("stage_iterations", "Iterations recorded by a stage", "stage"),
		stageErrors:     gauge("stage_errors", "Failed iterations recorded by a stage", "stage"),
		stageOps:        gauge("stage_ops_per_second", "Iterations per second of a stage", "stage"),
		stageSpeed:      gauge("stage_speed_factor", "Throughput of a stage relative to the reference stage", "stage", "reference"),
		latency:         gauge("latency_seconds", "Latency statistics of single operations", "tracker", "stat"),
		latencyOps:      gauge("latency_operations", "Operations recorded by a latency tracker", "tracker"),
		checkpointTotal: gauge("checkpoint_seconds", "Total time attributed to a checkpoint", "checkpoint"),
		checkpointShare: gauge("checkpoint_share_ratio", "Share of all checkpoint time, between 0 and 1", "checkpoint"),
		perfIterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "perf_iterations",
			Help:      "Iterations started by the checkpointer",
		}),
	}

	e.collectors = []prometheus.Collector{
		e.stageElapsed, e.stageIterations, e.stageErrors, e.stageOps, e.stageSpeed,
		e.latency, e.latencyOps,
		e.checkpointTotal, e.checkpointShare, e.perfIterations,
	}
	for _, c := range e.collectors {
		if err := registry.Register(c); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "failed to register collector"), ErrRegistrationFailed)
		}
	}

	return e, nil
}

// Registry returns the registry holding the collectors
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// ExportReport replaces the stage series with rep. Undefined throughput and
// speed factors are left out.
func (e *Exporter) ExportReport(rep bench.Report) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	for _, v := range []*prometheus.GaugeVec{e.stageElapsed, e.stageIterations, e.stageErrors, e.stageOps, e.stageSpeed} {
		v.Reset()
	}

	for _, r := range rep.Rows {
		e.stageElapsed.WithLabelValues(r.Name).Set(r.Elapsed.Seconds())
		e.stageIterations.WithLabelValues(r.Name).Set(float64(r.Iterations))
		e.stageErrors.WithLabelValues(r.Name).Set(float64(r.Errors))
		if finite(r.OpsPerSecond) {
			e.stageOps.WithLabelValues(r.Name).Set(r.OpsPerSecond)
		}
		if rep.HasReference() && finite(r.SpeedFactor) {
			e.stageSpeed.WithLabelValues(r.Name, rep.Reference).Set(r.SpeedFactor)
		}
	}
	return nil
}

// ExportLatency replaces the series of the tracker called name
func (e *Exporter) ExportLatency(name string, s bench.LatencySummary) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	e.latency.DeletePartialMatch(prometheus.Labels{"tracker": name})
	e.latencyOps.WithLabelValues(name).Set(float64(s.Count))
	if !s.Valid {
		return nil
	}
	e.latency.WithLabelValues(name, "avg").Set(s.Avg.Seconds())
	e.latency.WithLabelValues(name, "min").Set(s.Min.Seconds())
	e.latency.WithLabelValues(name, "max").Set(s.Max.Seconds())
	return nil
}

// ExportPerf replaces the checkpoint series with rep
func (e *Exporter) ExportPerf(rep bench.PerfReport) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	e.checkpointTotal.Reset()
	e.checkpointShare.Reset()
	e.perfIterations.Set(float64(rep.Iterations))
	for _, r := range rep.Rows {
		e.checkpointTotal.WithLabelValues(r.Name).Set(r.Total.Seconds())
		e.checkpointShare.WithLabelValues(r.Name).Set(r.Percent / 100)
	}
	return nil
}

// WriteTextfile writes every gathered metric to path in the text exposition
// format. The file is replaced atomically.
func (e *Exporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}

// Close unregisters the collectors. It is safe to call more than once.
func (e *Exporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	for _, c := range e.collectors {
		e.registry.Unregister(c)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
