package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IngestMetrics records counters for sales-file processing runs.
type IngestMetrics struct {
	duration *prometheus.HistogramVec
	rows     *prometheus.CounterVec
	runs     *prometheus.CounterVec
}

// NewIngestMetrics registers the ingest metrics on the provided registerer.
func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	if reg == nil {
		return &IngestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ingest_duration_seconds",
		Help:    "Duration of sales file processing in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"platform"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_rows_total",
		Help: "Processed sales rows by platform and outcome.",
	}, []string{"platform", "outcome"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_runs_total",
		Help: "Completed processing runs by platform and status.",
	}, []string{"platform", "status"})
	reg.MustRegister(duration, rows, runs)
	return &IngestMetrics{
		duration: duration,
		rows:     rows,
		runs:     runs,
	}
}

// ObserveDuration records the wall-clock time of one processing run.
func (m *IngestMetrics) ObserveDuration(platform string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(platform)).Observe(duration.Seconds())
}

// AddRows adds n to the row counter for the given platform and outcome.
// Outcome is one of "successful", "failed" or "skipped".
func (m *IngestMetrics) AddRows(platform, outcome string, n int) {
	if m == nil || m.rows == nil || n <= 0 {
		return
	}
	m.rows.WithLabelValues(normalizeLabel(platform), normalizeLabel(outcome)).Add(float64(n))
}

// IncRun increments the run counter for the given platform and final status.
func (m *IngestMetrics) IncRun(platform, status string) {
	if m == nil || m.runs == nil {
		return
	}
	m.runs.WithLabelValues(normalizeLabel(platform), normalizeLabel(status)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
