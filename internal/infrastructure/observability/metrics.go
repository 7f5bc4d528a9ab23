package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Transaction pipeline metrics
	RequestsTotal      *prometheus.CounterVec
	PipelineOutcomes   *prometheus.CounterVec
	PipelineDuration   *prometheus.HistogramVec
	ValidationFailures *prometheus.CounterVec

	// Platform metrics
	PlatformCalls    *prometheus.CounterVec
	PlatformDuration *prometheus.HistogramVec
	PlatformRetries  *prometheus.CounterVec

	// Callback metrics
	CallbackAttempts   *prometheus.CounterVec
	CallbackDeliveries *prometheus.CounterVec
	Compensations      *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all metrics against the given registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_total",
				Help:      "Total number of inbound transaction requests by action and ack status",
			},
			[]string{"action", "ack"},
		),
		PipelineOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipeline_outcomes_total",
				Help:      "Pipeline terminal states by action",
			},
			[]string{"action", "state"},
		),
		PipelineDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pipeline_duration_seconds",
				Help:      "Asynchronous pipeline duration in seconds",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"action"},
		),
		ValidationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Domain precondition failures by action and finality",
			},
			[]string{"action", "final"},
		),
		PlatformCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "platform_calls_total",
				Help:      "Commerce platform calls by operation and result",
			},
			[]string{"operation", "result"},
		),
		PlatformDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "platform_call_duration_seconds",
				Help:      "Commerce platform call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		PlatformRetries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "platform_retries_total",
				Help:      "Retried platform calls by operation",
			},
			[]string{"operation"},
		),
		CallbackAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "callback_attempts_total",
				Help:      "Callback delivery attempts by action",
			},
			[]string{"action"},
		),
		CallbackDeliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "callback_deliveries_total",
				Help:      "Callback delivery outcomes by action and result",
			},
			[]string{"action", "result"},
		),
		Compensations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "compensations_total",
				Help:      "Compensation attempts by action and result",
			},
			[]string{"action", "result"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.PipelineOutcomes,
		m.PipelineDuration,
		m.ValidationFailures,
		m.PlatformCalls,
		m.PlatformDuration,
		m.PlatformRetries,
		m.CallbackAttempts,
		m.CallbackDeliveries,
		m.Compensations,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}
