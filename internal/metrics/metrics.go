// Package metrics exports scoring run statistics in the Prometheus text format.
package metrics

import (
	"fmt"
	"time"

	"github.com/huangsam/gpugrade/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RunMetrics holds the collectors for one scoring run.
type RunMetrics struct {
	registry *prometheus.Registry

	RowsScoredTotal prometheus.Counter
	RowsFailedTotal prometheus.Counter
	GradeRows       *prometheus.GaugeVec
	Score           prometheus.Histogram
	RunDuration     prometheus.Gauge
}

// NewRunMetrics creates the collectors on a private registry.
func NewRunMetrics() *RunMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &RunMetrics{
		registry: reg,
		RowsScoredTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gpugrade_rows_scored_total",
			Help: "Number of rows scored successfully",
		}),
		RowsFailedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gpugrade_rows_failed_total",
			Help: "Number of rows rejected by validation",
		}),
		GradeRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gpugrade_grade_rows",
			Help: "Number of scored rows per letter grade",
		}, []string{"grade"}),
		Score: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gpugrade_score",
			Help:    "Distribution of composite scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gpugrade_run_duration_seconds",
			Help: "Wall time of the last scoring run",
		}),
	}
}

// Observe records a finished run.
func (m *RunMetrics) Observe(result schema.RunResult, duration time.Duration) {
	m.RowsScoredTotal.Add(float64(len(result.Scored)))
	m.RowsFailedTotal.Add(float64(len(result.Failures)))
	for grade, n := range result.GradeCounts() {
		m.GradeRows.WithLabelValues(string(grade)).Set(float64(n))
	}
	for _, s := range result.Scored {
		m.Score.Observe(s.Score)
	}
	m.RunDuration.Set(duration.Seconds())
}

// Registry exposes the underlying registry.
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the collected metrics to path for the node_exporter textfile collector.
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// WriteRunTextfile is a shortcut for a single run.
func WriteRunTextfile(path string, result schema.RunResult, duration time.Duration) error {
	m := NewRunMetrics()
	m.Observe(result, duration)
	return m.WriteTextfile(path)
}
