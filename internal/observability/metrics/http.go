package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	submissionsTotal    *prometheus.CounterVec
	decisionDuration    *prometheus.HistogramVec
	routedTotal         *prometheus.CounterVec
	transformsTotal     *prometheus.CounterVec
	recognitionFailures *prometheus.CounterVec
	registryCategories  *prometheus.GaugeVec
}

func NewServerMetrics(service string) *ServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cosmicstack",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cosmicstack",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cosmicstack",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	submissionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cosmicstack",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Total artifact submissions by kind and outcome.",
		},
		[]string{"service", "kind", "status"},
	)
	decisionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cosmicstack",
			Subsystem: "intake",
			Name:      "decision_duration_seconds",
			Help:      "Routing decision duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "kind"},
	)
	routedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cosmicstack",
			Subsystem: "intake",
			Name:      "routed_total",
			Help:      "Total artifacts routed per storage category.",
		},
		[]string{"service", "category"},
	)
	transformsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cosmicstack",
			Subsystem: "intake",
			Name:      "transforms_total",
			Help:      "Total transforms applied to stored artifacts.",
		},
		[]string{"service", "transform"},
	)
	recognitionFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cosmicstack",
			Subsystem: "intake",
			Name:      "recognition_failures_total",
			Help:      "Total failed text recognition calls by reason.",
		},
		[]string{"service", "reason"},
	)
	registryCategories := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "cosmicstack",
			Subsystem: "registry",
			Name:      "categories",
			Help:      "Number of categories known to the registry.",
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		submissionsTotal,
		decisionDuration,
		routedTotal,
		transformsTotal,
		recognitionFailures,
		registryCategories,
	)

	return &ServerMetrics{
		registry:            registry,
		requestTotal:        requestTotal,
		requestDuration:     requestDuration,
		requestInFlight:     requestInFlight,
		submissionsTotal:    submissionsTotal,
		decisionDuration:    decisionDuration,
		routedTotal:         routedTotal,
		transformsTotal:     transformsTotal,
		recognitionFailures: recognitionFailures,
		registryCategories:  registryCategories,
	}
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses unknown paths so probe traffic cannot blow up
// label cardinality.
func normalizePath(path string) string {
	switch path {
	case "/healthz", "/metrics", "/api/store", "/api/stats", "/api/recent_files":
		return path
	default:
		return "other"
	}
}

func (m *ServerMetrics) RecordSubmission(service, kind, status string, duration time.Duration) {
	if kind == "" {
		kind = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	m.submissionsTotal.WithLabelValues(service, kind, status).Inc()
	m.decisionDuration.WithLabelValues(service, kind).Observe(duration.Seconds())
}

func (m *ServerMetrics) RecordRouted(service, category string, transforms []string) {
	if category == "" {
		category = "unknown"
	}
	m.routedTotal.WithLabelValues(service, category).Inc()
	for _, transform := range transforms {
		m.transformsTotal.WithLabelValues(service, transform).Inc()
	}
}

func (m *ServerMetrics) RecordRecognitionFailure(service, reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.recognitionFailures.WithLabelValues(service, reason).Inc()
}

func (m *ServerMetrics) SetRegistryCategories(service string, count int) {
	m.registryCategories.WithLabelValues(service).Set(float64(count))
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
