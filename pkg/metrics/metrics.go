// Package metrics exports merge run statistics in the Prometheus text format,
// for the node_exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sdejongh/mergeln/pkg/models"
)

const namespace = "mergeln"

// RunMetrics holds the gauges describing the last merge run
type RunMetrics struct {
	registry *prometheus.Registry

	pairs          *prometheus.GaugeVec
	skipped        *prometheus.GaugeVec
	dirsVisited    prometheus.Gauge
	errors         prometheus.Gauge
	bytesCompared  prometheus.Gauge
	bytesReclaimed prometheus.Gauge
	duration       prometheus.Gauge
	lastRun        prometheus.Gauge
}

// NewRunMetrics creates the gauges on a private registry
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		pairs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pairs",
			Help:      "File pairs compared in the last run, by outcome.",
		}, []string{"outcome"}),
		skipped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries_skipped",
			Help:      "Directory entries not compared in the last run, by reason.",
		}, []string{"reason"}),
		dirsVisited: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "directories_visited",
			Help:      "Directories listed in the last run.",
		}),
		errors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "errors",
			Help:      "Pairs and directories that failed in the last run.",
		}),
		bytesCompared: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "compared_bytes",
			Help:      "Bytes read by content comparisons in the last run.",
		}),
		bytesReclaimed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reclaimed_bytes",
			Help:      "Bytes freed by replacing files with hard links in the last run.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the last run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}

	m.registry.MustRegister(
		m.pairs,
		m.skipped,
		m.dirsVisited,
		m.errors,
		m.bytesCompared,
		m.bytesReclaimed,
		m.duration,
		m.lastRun,
	)

	return m
}

// Registry returns the registry holding the gauges
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe sets every gauge from report
func (m *RunMetrics) Observe(report *models.MergeReport) {
	s := report.Stats

	m.pairs.WithLabelValues(string(models.OutcomeLinked)).Set(float64(s.FilesLinked))
	m.pairs.WithLabelValues(string(models.OutcomeSameFile)).Set(float64(s.AlreadyLinked))
	m.pairs.WithLabelValues(string(models.OutcomeDifferentSizes)).Set(float64(s.DifferentSizes))
	m.pairs.WithLabelValues(string(models.OutcomeDifferentFiles)).Set(float64(s.DifferentContent))
	m.pairs.WithLabelValues(string(models.OutcomeError)).Set(float64(s.PairsErrored))

	m.skipped.WithLabelValues("hidden").Set(float64(s.HiddenSkipped))
	m.skipped.WithLabelValues("excluded").Set(float64(s.Excluded))
	m.skipped.WithLabelValues("cycle").Set(float64(s.CyclesSkipped))
	m.skipped.WithLabelValues("unmatched").Set(float64(s.EntriesSkipped))

	m.dirsVisited.Set(float64(s.DirsVisited))
	m.errors.Set(float64(len(report.Errors)))
	m.bytesCompared.Set(float64(s.BytesCompared))
	m.bytesReclaimed.Set(float64(s.BytesReclaimed))
	m.duration.Set(report.Duration.Seconds())
	m.lastRun.Set(float64(report.EndTime.Unix()))
}

// WriteTextfile records report and writes the gauges to path.
// The file is written to a temporary name and renamed into place.
func WriteTextfile(path string, report *models.MergeReport) error {
	m := NewRunMetrics()
	m.Observe(report)
	return prometheus.WriteToTextfile(path, m.registry)
}
