package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom application metrics.
type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Transcription Metrics
	TranscriptionRequestsTotal *prometheus.CounterVec
	TranscriptionDuration      prometheus.Histogram
	TranscriptsSavedTotal      prometheus.Counter

	// Word-count post-processing
	PostProcessingDuration prometheus.Histogram
	PostProcessingFailures *prometheus.CounterVec

	// Cache (Redis) Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Queue (RabbitMQ) Metrics
	QueueMessagesPublished *prometheus.CounterVec
	QueueMessagesConsumed  *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance with every metric registered.
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		TranscriptionRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transcription_requests_total",
				Help: "Total number of audio transcription requests",
			},
			[]string{"status"}, // success, failed
		),

		TranscriptionDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transcription_duration_seconds",
				Help:    "Duration of conversion plus transcription in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
			},
		),

		TranscriptsSavedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "transcripts_saved_total",
				Help: "Total number of transcripts persisted",
			},
		),

		PostProcessingDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transcript_post_processing_duration_seconds",
				Help:    "Duration of transcript post-processing in seconds",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),

		PostProcessingFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transcript_post_processing_failures_total",
				Help: "Total number of failed transcript post-processing attempts",
			},
			[]string{"error_type"},
		),

		CacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"key_type"},
		),

		CacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"key_type"},
		),

		QueueMessagesPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "queue_messages_published_total",
				Help: "Total number of messages published to the queue",
			},
			[]string{"queue_name"},
		),

		QueueMessagesConsumed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "queue_messages_consumed_total",
				Help: "Total number of messages consumed from the queue",
			},
			[]string{"queue_name"},
		),
	}
}

// GlobalMetrics is the process-wide Metrics instance.
var GlobalMetrics *Metrics

// InitMetrics initializes the global metrics.
func InitMetrics() {
	GlobalMetrics = NewMetrics()
}
