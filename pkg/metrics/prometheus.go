// Package metrics provides Prometheus metrics for the fitscore service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values.
const (
	OutcomeSuccess = "success"
	OutcomeNoData  = "no_data"
	OutcomeError   = "error"

	SegmentAccepted = "accepted"
	SegmentRejected = "rejected"
)

// Manager manages all Prometheus metrics for the fitscore service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Scoring run metrics
	runs            *prometheus.CounterVec
	runDuration     prometheus.Histogram
	segments        *prometheus.CounterVec
	studentsScored  prometheus.Counter
	cellsUnscored   *prometheus.CounterVec
	reportsWritten  prometheus.Counter
	lastRunStudents prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec

	// System Metrics
	storedRuns        prometheus.Gauge
	systemMemoryUsage prometheus.Gauge
	goroutineCount    prometheus.Gauge
	gcPauseTime       prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fitscore",
		subsystem:        "scoring",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Configure replaces the global manager with one built from opts on a fresh
// custom registry. Call it once at startup, before any handler serves
// GetRegistry.
func Configure(opts ...Option) *Manager {
	registry := prometheus.NewRegistry()
	customRegistry = registry
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	globalManager = NewManager(append(all, WithPrometheusRegistry(registry))...)
	return globalManager
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Scoring runs by outcome",
	}, []string{"outcome"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_milliseconds",
		Help:      "Wall time of a scoring run including report writing",
		Buckets:   m.histogramBuckets,
	})

	m.segments = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "segments_total",
		Help:      "Sheet segments by status (accepted or rejected)",
	}, []string{"status"})

	m.studentsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "students_scored_total",
		Help:      "Students that went through scoring",
	})

	m.cellsUnscored = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cells_unscored_total",
		Help:      "Item cells that received no points, by reason",
	}, []string{"reason"})

	m.reportsWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reports_written_total",
		Help:      "Report workbooks written (combined and per class)",
	})

	m.lastRunStudents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_students",
		Help:      "Students in the most recent successful run",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)

	m.storedRuns = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stored_runs",
		Help:      "Runs whose reports are available for download",
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Heap bytes allocated by the process",
	})

	m.goroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Number of goroutines",
	})

	m.gcPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Average GC pause in milliseconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	})
}

// RecordRun counts a finished run and its duration.
func (m *Manager) RecordRun(outcome string, d time.Duration) {
	if !m.enabled {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(float64(d.Milliseconds()))
}

// RecordSegments counts accepted and rejected segments of a run.
func (m *Manager) RecordSegments(accepted, rejected int) {
	if !m.enabled {
		return
	}
	m.segments.WithLabelValues(SegmentAccepted).Add(float64(accepted))
	m.segments.WithLabelValues(SegmentRejected).Add(float64(rejected))
}

// RecordStudents counts scored students and remembers the run size.
func (m *Manager) RecordStudents(n int) {
	if !m.enabled {
		return
	}
	m.studentsScored.Add(float64(n))
	m.lastRunStudents.Set(float64(n))
}

// RecordUnscored counts one item cell without points.
func (m *Manager) RecordUnscored(reason string) {
	if !m.enabled {
		return
	}
	m.cellsUnscored.WithLabelValues(reason).Inc()
}

// RecordReportWritten counts one written workbook.
func (m *Manager) RecordReportWritten() {
	if !m.enabled {
		return
	}
	m.reportsWritten.Inc()
}

// RecordRun records a run on the global manager.
func RecordRun(outcome string, d time.Duration) { globalManager.RecordRun(outcome, d) }

// RecordSegments records segment counts on the global manager.
func RecordSegments(accepted, rejected int) { globalManager.RecordSegments(accepted, rejected) }

// RecordStudents records scored students on the global manager.
func RecordStudents(n int) { globalManager.RecordStudents(n) }

// RecordUnscored records an unscored cell on the global manager.
func RecordUnscored(reason string) { globalManager.RecordUnscored(reason) }

// RecordReportWritten records a written workbook on the global manager.
func RecordReportWritten() { globalManager.RecordReportWritten() }

// RecordError counts an error raised by component.
func (m *Manager) RecordError(component, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateStoredRuns sets the number of downloadable runs.
func (m *Manager) UpdateStoredRuns(n int) {
	if !m.enabled {
		return
	}
	m.storedRuns.Set(float64(n))
}

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordError(component, errorType)
}

// UpdateStoredRuns sets the number of downloadable runs.
func UpdateStoredRuns(n int) { globalManager.UpdateStoredRuns(n) }

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.goroutineCount.Set(float64(n))
}

// RecordSystemGCPauseTime observes an average GC pause.
func RecordSystemGCPauseTime(ms float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.gcPauseTime.Observe(ms)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
