// Package metrics provides Prometheus metrics collection.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements the MetricsCollector port using Prometheus.
type Collector struct {
	discoveryCounter      *prometheus.CounterVec
	discoveryDuration     prometheus.Histogram
	fetchCounter          *prometheus.CounterVec
	fetchDuration         prometheus.Histogram
	classificationCounter *prometheus.CounterVec
	cloudFraction         prometheus.Gauge
	httpRequestsTotal     *prometheus.CounterVec
	httpRequestDuration   *prometheus.HistogramVec
}

// NewCollector creates a new Prometheus metrics collector.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "nimbus"
	}

	return &Collector{
		discoveryCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "archive_discoveries_total",
				Help:      "Total number of archive partition listings",
			},
			[]string{"status"},
		),

		discoveryDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "archive_discovery_duration_seconds",
				Help:      "Archive listing duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		fetchCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scan_fetches_total",
				Help:      "Total number of scan downloads",
			},
			[]string{"status"},
		),

		fetchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "scan_fetch_duration_seconds",
				Help:      "Scan download duration in seconds",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
		),

		classificationCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "classifications_total",
				Help:      "Total number of cloud classifications",
			},
			[]string{"branch"},
		),

		cloudFraction: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cloud_fraction_percent",
				Help:      "Most recently derived cloud fraction in percent",
			},
		),

		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// IncDiscovery increments the archive discovery counter.
func (c *Collector) IncDiscovery(success bool) {
	c.discoveryCounter.WithLabelValues(statusLabel(success)).Inc()
}

// ObserveDiscoveryDuration records archive listing duration.
func (c *Collector) ObserveDiscoveryDuration(duration time.Duration) {
	c.discoveryDuration.Observe(duration.Seconds())
}

// IncFetch increments the scan download counter.
func (c *Collector) IncFetch(success bool) {
	c.fetchCounter.WithLabelValues(statusLabel(success)).Inc()
}

// ObserveFetchDuration records scan download duration.
func (c *Collector) ObserveFetchDuration(duration time.Duration) {
	c.fetchDuration.Observe(duration.Seconds())
}

// IncClassification increments the classification counter per branch.
func (c *Collector) IncClassification(daytime bool) {
	branch := "night"
	if daytime {
		branch = "day"
	}
	c.classificationCounter.WithLabelValues(branch).Inc()
}

// SetCloudFraction records the most recently derived cloud fraction.
func (c *Collector) SetCloudFraction(percent float64) {
	c.cloudFraction.Set(percent)
}

// IncHTTPRequests increments the HTTP request counter.
func (c *Collector) IncHTTPRequests(method, path, status string) {
	c.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveHTTPDuration records HTTP request duration.
func (c *Collector) ObserveHTTPDuration(method, path string, duration time.Duration) {
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns HTTP middleware for metrics collection.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		path := normalizePath(r.URL.Path)
		status := statusToString(wrapped.statusCode)

		c.IncHTTPRequests(r.Method, path, status)
		c.ObserveHTTPDuration(r.Method, path, duration)
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// normalizePath caps path length to keep metric cardinality bounded.
func normalizePath(path string) string {
	if len(path) > 20 {
		return path[:20] + "..."
	}
	return path
}

// statusToString converts HTTP status code to string category.
func statusToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
