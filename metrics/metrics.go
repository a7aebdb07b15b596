package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tournament_engine"

// Recorder is what the service layer reports to. A nil *Metrics is a valid no-op Recorder.
type Recorder interface {
	ObserveOperation(operation string, started time.Time, err error)
	SchedulesGenerated(format string, matches int)
	RatingsApplied(n int)
	SnapshotsPublished()
}

type Metrics struct {
	registry           *prometheus.Registry
	operations         *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec
	schedules          *prometheus.CounterVec
	scheduledMatches   prometheus.Histogram
	ratingUpdates      prometheus.Counter
	snapshotsPublished prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Engine operations by name and outcome.",
		}, []string{"operation", "status"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Time spent in engine operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"operation"}),
		schedules: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedules_generated_total",
			Help:      "Schedules generated by format.",
		}, []string{"format"}),
		scheduledMatches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "schedule_matches",
			Help:      "Number of matches in generated schedules.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		ratingUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rating_updates_total",
			Help:      "Rating records produced.",
		}),
		snapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_snapshots_published_total",
			Help:      "Bracket layouts written to the snapshot store.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.operations,
		m.operationDuration,
		m.schedules,
		m.scheduledMatches,
		m.ratingUpdates,
		m.snapshotsPublished,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveOperation(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.operations.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) SchedulesGenerated(format string, matches int) {
	if m == nil {
		return
	}
	m.schedules.WithLabelValues(format).Inc()
	m.scheduledMatches.Observe(float64(matches))
}

func (m *Metrics) RatingsApplied(n int) {
	if m == nil {
		return
	}
	m.ratingUpdates.Add(float64(n))
}

func (m *Metrics) SnapshotsPublished() {
	if m == nil {
		return
	}
	m.snapshotsPublished.Inc()
}
