package internal

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus metrics for inbound page requests and
// outbound backend calls, on a private registry.
type Metrics struct {
	reqTotal       *prometheus.CounterVec
	reqLatency     *prometheus.HistogramVec
	backendTotal   *prometheus.CounterVec
	backendLatency *prometheus.HistogramVec
	registry       *prometheus.Registry
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	reqLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	backendTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_calls_total",
			Help: "Total calls to the backend API",
		},
		[]string{"resource", "method", "status"},
	)

	backendLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_call_duration_seconds",
			Help:    "Backend call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "method", "status"},
	)

	registry.MustRegister(reqTotal, reqLatency, backendTotal, backendLatency)

	return &Metrics{
		reqTotal:       reqTotal,
		reqLatency:     reqLatency,
		backendTotal:   backendTotal,
		backendLatency: backendLatency,
		registry:       registry,
	}
}

// Middleware returns a Chi middleware that records inbound requests,
// labeling by the matched route pattern rather than the raw path.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(rw, r)

			path := r.URL.Path
			if chiCtx := chi.RouteContext(r.Context()); chiCtx != nil && len(chiCtx.RoutePatterns) > 0 {
				path = chiCtx.RoutePatterns[len(chiCtx.RoutePatterns)-1]
			}

			status := http.StatusText(rw.code)
			m.reqTotal.WithLabelValues(r.Method, path, status).Inc()
			m.reqLatency.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

// ObserveBackendCall records one outbound call to the backend API. A zero
// status means the call never produced a response (transport error or
// cancellation). Satisfies the api client's observer interface.
func (m *Metrics) ObserveBackendCall(resource, method string, status int, elapsed time.Duration) {
	label := strconv.Itoa(status)
	m.backendTotal.WithLabelValues(resource, method, label).Inc()
	m.backendLatency.WithLabelValues(resource, method, label).Observe(elapsed.Seconds())
}

// Handler serves the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the HTTP status code for metrics
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	return sr.ResponseWriter.Write(b)
}
