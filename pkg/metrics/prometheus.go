// Package metrics provides Prometheus metrics for the teampick service.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Balance outcomes used as label values.
const (
	OutcomeBalanced = "balanced"
	OutcomeRejected = "rejected"
)

// Manager manages all Prometheus metrics for the teampick service.
type Manager struct {
	namespace         string
	subsystem         string
	histogramBuckets  []float64
	differenceBuckets []float64
	enabled           bool
	customLabels      map[string]string
	registry          prometheus.Registerer

	// Core business metrics
	balanceRequests     *prometheus.CounterVec
	balanceDifference   prometheus.Histogram
	candidatesEvaluated prometheus.Counter
	splitValidations    *prometheus.CounterVec
	rosterRejections    *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:         "teampick",
		subsystem:         "balancer",
		histogramBuckets:  prometheus.DefBuckets,
		differenceBuckets: []float64{0, 0.2, 0.4, 0.6, 1, 2, 3, 5, 10},
		enabled:           true,
		customLabels:      make(map[string]string),
		registry:          prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.balanceRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "balance_requests_total",
		Help:        "Total number of automatic balance requests by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.balanceDifference = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "balance_difference_points",
		Help:        "Strength difference of the best split returned (lower is better)",
		Buckets:     m.differenceBuckets,
		ConstLabels: labels,
	})

	m.candidatesEvaluated = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "candidates_evaluated_total",
		Help:        "Total number of candidate splits evaluated by the exhaustive search",
		ConstLabels: labels,
	})

	m.splitValidations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "split_validations_total",
		Help:        "Total number of manual split validations by result",
		ConstLabels: labels,
	}, []string{"valid"})

	m.rosterRejections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "roster_rejections_total",
		Help:        "Total number of rosters rejected by reason",
		ConstLabels: labels,
	}, []string{"reason"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Total number of errors by endpoint, method and error type",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_type_total",
		Help:        "Total number of errors by type and severity",
		ConstLabels: labels,
	}, []string{"error_type", "severity"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "Heap bytes allocated",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutines",
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "gc_pause_milliseconds",
		Help:        "Average GC pause time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})
}

// RecordBalance counts a balance request with its outcome.
func (m *Manager) RecordBalance(outcome string) {
	if !m.enabled {
		return
	}
	m.balanceRequests.WithLabelValues(outcome).Inc()
}

// ObserveBalance records the result of a successful search.
func (m *Manager) ObserveBalance(difference float64, evaluated int) {
	if !m.enabled {
		return
	}
	m.balanceDifference.Observe(difference)
	m.candidatesEvaluated.Add(float64(evaluated))
}

// RecordSplitValidation counts a manual split validation.
func (m *Manager) RecordSplitValidation(valid bool) {
	if !m.enabled {
		return
	}
	m.splitValidations.WithLabelValues(strconv.FormatBool(valid)).Inc()
}

// RecordRosterRejection counts a rejected roster.
func (m *Manager) RecordRosterRejection(reason string) {
	if !m.enabled {
		return
	}
	m.rosterRejections.WithLabelValues(reason).Inc()
}

// Package-level recorders on the global manager.

// RecordBalance counts a balance request with its outcome.
func RecordBalance(outcome string) { globalManager.RecordBalance(outcome) }

// ObserveBalance records the difference and work of a successful search.
func ObserveBalance(difference float64, evaluated int) {
	globalManager.ObserveBalance(difference, evaluated)
}

// RecordSplitValidation counts a manual split validation.
func RecordSplitValidation(valid bool) { globalManager.RecordSplitValidation(valid) }

// RecordRosterRejection counts a rejected roster by reason.
func RecordRosterRejection(reason string) { globalManager.RecordRosterRejection(reason) }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
