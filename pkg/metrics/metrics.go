package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Custom histogram buckets optimized for API response times ranging from
// milliseconds to 30+ seconds. Provides better granularity for monitoring
// content store and review platform calls.
var CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

// Registry is the dedicated registry served at /api/metrics. A dedicated
// registry keeps third-party default collectors from leaking into it.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Content Store Client Metrics (Sanity)
	ContentStoreRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "content_store_operation_duration_seconds",
			Help:    "Content store operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	ContentStoreRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_store_operation_total",
			Help: "Total number of content store operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheInvalidations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "Total number of cache tag invalidations",
		},
		[]string{"cache_tag"},
	)

	// Storage Client Metrics (attachment object store)
	StorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	StorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// Business Metrics
	EnquirySubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "joinery_enquiry_submissions_total",
			Help: "Total number of enquiry form submissions",
		},
		[]string{"status"},
	)

	EnquiryAttachments = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "joinery_enquiry_attachments",
			Help:    "Number of attachments per accepted enquiry",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
		[]string{"stored"},
	)

	RevalidationRequests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "joinery_revalidation_requests_total",
			Help: "Total number of content revalidation webhook calls",
		},
		[]string{"status"},
	)

	ReviewsFetches = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "joinery_reviews_fetches_total",
			Help: "Total number of external review platform fetches",
		},
		[]string{"platform", "status"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// Init registers the standard process and Go runtime collectors on the
// dedicated registry. Called once at startup.
func Init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
