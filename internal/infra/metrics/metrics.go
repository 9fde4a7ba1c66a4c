// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "asistente_contable"

// Result labels shared by ingestion and advice counters.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
	ResultOpen     = "circuit_open"
)

// Collector owns a private registry and the service metrics. A nil *Collector records nothing.
type Collector struct {
	registry *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	webhookIngestions *prometheus.CounterVec
	adviceGenerated   *prometheus.CounterVec
	circuitState      *prometheus.GaugeVec
	emailsProcessed   *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics, plus the Go and process collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method and route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		webhookIngestions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "webhook_ingestions_total",
				Help:      "Webhook payloads processed by kind and result",
			},
			[]string{"kind", "result"},
		),
		adviceGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "advice_generated_total",
				Help:      "Advice generation attempts by result",
			},
			[]string{"result"},
		),
		circuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "circuit_state",
				Help:      "Circuit breaker state per dependency (0=closed, 1=open, 2=half-open)",
			},
			[]string{"dependency"},
		),
		emailsProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "emails_processed_total",
				Help:      "Queued emails processed by template and status",
			},
			[]string{"template", "status"},
		),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.httpRequests,
		c.httpDuration,
		c.webhookIngestions,
		c.adviceGenerated,
		c.circuitState,
		c.emailsProcessed,
	)

	return c
}

// Registry returns the registry backing the collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the exposition format of the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// RecordRequest records one served HTTP request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordWebhook records the outcome of one webhook payload.
func (c *Collector) RecordWebhook(kind, result string) {
	if c == nil {
		return
	}
	c.webhookIngestions.WithLabelValues(kind, result).Inc()
}

// RecordAdvice records the outcome of one advice generation attempt.
func (c *Collector) RecordAdvice(result string) {
	if c == nil {
		return
	}
	c.adviceGenerated.WithLabelValues(result).Inc()
}

// RecordCircuitState records the state of a circuit breaker.
func (c *Collector) RecordCircuitState(dependency string, state float64) {
	if c == nil {
		return
	}
	c.circuitState.WithLabelValues(dependency).Set(state)
}

// RecordEmail records the outcome of one email delivery attempt.
func (c *Collector) RecordEmail(template, status string) {
	if c == nil {
		return
	}
	c.emailsProcessed.WithLabelValues(template, status).Inc()
}
