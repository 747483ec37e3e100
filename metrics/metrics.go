// Package metrics provides Prometheus instruments for the residence service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Kinds of computation recorded by RecordAssessment.
const (
	KindAssessment = "assessment"
	KindReport     = "report"
)

// Manager owns the service's instruments and the registry they live in.
// A nil *Manager is valid: it records nothing and serves 404 on Handler.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	assessments        *prometheus.CounterVec
	assessmentDuration prometheus.Histogram
	validationFailures prometheus.Counter

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace sets the metric name prefix.
func WithNamespace(ns string) Option {
	return func(m *Manager) { m.namespace = ns }
}

// WithHistogramBuckets overrides the latency buckets, in seconds.
func WithHistogramBuckets(b []float64) Option {
	return func(m *Manager) { m.histogramBuckets = b }
}

// WithRegistry registers into r instead of a fresh registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) { m.registry = r }
}

// NewManager creates and registers every instrument.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "reckoner",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.assessments = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "assessments_total",
		Help:      "Residence assessments computed, by output kind",
	}, []string{"kind"})

	m.assessmentDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "assessment_duration_seconds",
		Help:      "Time spent computing one assessment and its output",
		Buckets:   m.histogramBuckets,
	})

	m.validationFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "validation_failures_total",
		Help:      "Records rejected before any computation",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and method",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method"})
}

// RecordAssessment counts one computation of kind that took d.
func (m *Manager) RecordAssessment(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.assessments.WithLabelValues(kind).Inc()
	m.assessmentDuration.Observe(d.Seconds())
}

// RecordValidationFailure counts one rejected record.
func (m *Manager) RecordValidationFailure() {
	if m == nil {
		return
	}
	m.validationFailures.Inc()
}

// RecordHTTPRequest counts one served request.
func (m *Manager) RecordHTTPRequest(route, method, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// Registry exposes the registry for tests and extra collectors.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
