// Package metrics provides Prometheus metrics for the dfsviz slate service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upload outcomes used as the "result" label.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Manager manages all Prometheus metrics for the dfsviz service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Ingest metrics
	uploads         *prometheus.CounterVec
	rowsReceived    prometheus.Counter
	rowsDropped     prometheus.Counter
	playersIngested *prometheus.CounterVec
	parseWarnings   prometheus.Counter
	defaultedFields *prometheus.CounterVec
	ingestLatency   prometheus.Histogram

	// Dataset metrics
	playersStored *prometheus.GaugeVec

	// Repository metrics
	repositoryRecordsTotal  prometheus.Gauge
	repositoryUpdateLatency prometheus.Histogram
	repositoryQueryLatency  prometheus.Histogram

	// Chart metrics
	chartRenders       *prometheus.CounterVec
	chartRenderLatency prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "dfsviz",
		subsystem:        "slate",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     buckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.uploads = auto.NewCounterVec(
		m.counterOpts("uploads_total", "Total number of slate uploads by outcome"),
		[]string{"result", "format"},
	)
	m.rowsReceived = auto.NewCounter(m.counterOpts("rows_received_total", "Data rows handed to the normalizer"))
	m.rowsDropped = auto.NewCounter(m.counterOpts("rows_dropped_total", "Rows dropped because no name resolved"))
	m.playersIngested = auto.NewCounterVec(
		m.counterOpts("players_ingested_total", "Players admitted by position"),
		[]string{"position"},
	)
	m.parseWarnings = auto.NewCounter(m.counterOpts("parse_warnings_total", "Non-fatal tokenizer warnings"))
	m.defaultedFields = auto.NewCounterVec(
		m.counterOpts("defaulted_fields_total", "Numeric fields that fell back to zero"),
		[]string{"field"},
	)
	m.ingestLatency = auto.NewHistogram(m.histogramOpts("ingest_latency_milliseconds", "End-to-end upload parse latency", m.histogramBuckets))

	m.playersStored = auto.NewGaugeVec(
		m.gaugeOpts("players_stored", "Players in the persisted slot by collection"),
		[]string{"collection"},
	)

	m.repositoryRecordsTotal = auto.NewGauge(m.gaugeOpts("repository_records_total", "Records held by the slot store"))
	m.repositoryUpdateLatency = auto.NewHistogram(m.histogramOpts("repository_update_latency_milliseconds", "Slot save/clear latency", m.histogramBuckets))
	m.repositoryQueryLatency = auto.NewHistogram(m.histogramOpts("repository_query_latency_milliseconds", "Slot load latency", m.histogramBuckets))

	m.chartRenders = auto.NewCounterVec(
		m.counterOpts("chart_renders_total", "Chart projections built by kind"),
		[]string{"kind"},
	)
	m.chartRenderLatency = auto.NewHistogram(m.histogramOpts("chart_render_latency_milliseconds", "PNG chart render latency", m.histogramBuckets))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// RecordUpload counts one upload attempt.
func RecordUpload(result, format string) {
	globalManager.uploads.WithLabelValues(result, format).Inc()
}

// RecordRows records how many rows were received and dropped by one normalization pass.
func RecordRows(received, dropped int) {
	globalManager.rowsReceived.Add(float64(received))
	globalManager.rowsDropped.Add(float64(dropped))
}

// RecordPlayerIngested counts one admitted player.
func RecordPlayerIngested(position string) {
	globalManager.playersIngested.WithLabelValues(position).Inc()
}

// RecordParseWarnings adds non-fatal tokenizer warnings.
func RecordParseWarnings(n int) {
	globalManager.parseWarnings.Add(float64(n))
}

// RecordDefaultedField counts a numeric field that fell back to zero.
func RecordDefaultedField(field string) {
	globalManager.defaultedFields.WithLabelValues(field).Inc()
}

// Millis converts d to fractional milliseconds for the latency histograms.
func Millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// RecordIngestLatency records upload parse latency in milliseconds.
func RecordIngestLatency(latencyMs float64) {
	globalManager.ingestLatency.Observe(latencyMs)
}

// UpdatePlayersStored sets the stored player count for a collection.
func UpdatePlayersStored(collection string, count int) {
	globalManager.playersStored.WithLabelValues(collection).Set(float64(count))
}

// UpdateRepositoryRecordsTotal sets the number of records in the slot store.
func UpdateRepositoryRecordsTotal(count int) {
	globalManager.repositoryRecordsTotal.Set(float64(count))
}

// RecordRepositoryUpdateLatency records slot write latency.
func RecordRepositoryUpdateLatency(latencyMs float64) {
	globalManager.repositoryUpdateLatency.Observe(latencyMs)
}

// RecordRepositoryQueryLatency records slot read latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.repositoryQueryLatency.Observe(latencyMs)
}

// RecordChartRender counts a chart projection of the given kind ("json" or "png").
func RecordChartRender(kind string) {
	globalManager.chartRenders.WithLabelValues(kind).Inc()
}

// RecordChartRenderLatency records PNG render latency.
func RecordChartRenderLatency(latencyMs float64) {
	globalManager.chartRenderLatency.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
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
