package infrastructure

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetricsRecorder implements the MetricsRecorder port on its own
// registry, so several instances can live in one process
type PrometheusMetricsRecorder struct {
	registry       *prometheus.Registry
	fetches        *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	loginAttempts  *prometheus.CounterVec
	sessionChanges *prometheus.CounterVec
	guardRedirects *prometheus.CounterVec
}

// NewPrometheusMetricsRecorder registers the client collectors plus the Go
// runtime and process collectors
func NewPrometheusMetricsRecorder() *PrometheusMetricsRecorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &PrometheusMetricsRecorder{
		registry: registry,
		fetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lighthouse_fetch_total",
				Help: "The total number of concluded weather fetches",
			},
			[]string{"dataset", "outcome"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lighthouse_fetch_duration_seconds",
				Help:    "Weather fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"dataset", "outcome"},
		),
		loginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lighthouse_login_attempts_total",
				Help: "The total number of username and PIN submissions",
			},
			[]string{"stage", "outcome"},
		),
		sessionChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lighthouse_session_changes_total",
				Help: "The total number of session mutations",
			},
			[]string{"action"},
		),
		guardRedirects: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lighthouse_guard_redirects_total",
				Help: "The total number of protected route redirects",
			},
			[]string{"route"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *PrometheusMetricsRecorder) RecordFetch(dataset, outcome string, duration time.Duration) {
	m.fetches.WithLabelValues(dataset, outcome).Inc()
	m.fetchDuration.WithLabelValues(dataset, outcome).Observe(duration.Seconds())
}

func (m *PrometheusMetricsRecorder) RecordLoginAttempt(stage, outcome string) {
	m.loginAttempts.WithLabelValues(stage, outcome).Inc()
}

func (m *PrometheusMetricsRecorder) RecordSessionChange(action string) {
	m.sessionChanges.WithLabelValues(action).Inc()
}

func (m *PrometheusMetricsRecorder) RecordGuardRedirect(route string) {
	m.guardRedirects.WithLabelValues(route).Inc()
}

// Registry exposes the registry for tests and extra collectors
func (m *PrometheusMetricsRecorder) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *PrometheusMetricsRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
