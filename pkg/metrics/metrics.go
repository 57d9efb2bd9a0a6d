package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request throughput and latency per route.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewHTTPMetrics registers the request metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of gateway HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Gateway HTTP requests by status.",
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration, requests)
	return &HTTPMetrics{duration: duration, requests: requests}
}

// Observe records one completed request.
func (h *HTTPMetrics) Observe(method, route, status string, elapsed time.Duration) {
	if h == nil || h.duration == nil {
		return
	}
	h.duration.WithLabelValues(method, normalizeLabel(route)).Observe(elapsed.Seconds())
	h.requests.WithLabelValues(method, normalizeLabel(route), status).Inc()
}

// GateMetrics counts access-gate outcomes.
type GateMetrics struct {
	decisions *prometheus.CounterVec
}

// NewGateMetrics registers the gate decision counters.
func NewGateMetrics(reg prometheus.Registerer) *GateMetrics {
	if reg == nil {
		return &GateMetrics{}
	}
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gate_decisions_total",
		Help: "Access gate outcomes: allow, redirect, or fail_open.",
	}, []string{"outcome"})
	reg.MustRegister(decisions)
	return &GateMetrics{decisions: decisions}
}

// IncAllow counts a request passed through by the gate.
func (g *GateMetrics) IncAllow() { g.inc("allow") }

// IncRedirect counts a redirect decision.
func (g *GateMetrics) IncRedirect() { g.inc("redirect") }

// IncFailOpen counts a session lookup failure that was allowed through.
func (g *GateMetrics) IncFailOpen() { g.inc("fail_open") }

func (g *GateMetrics) inc(outcome string) {
	if g == nil || g.decisions == nil {
		return
	}
	g.decisions.WithLabelValues(outcome).Inc()
}

// CartMetrics counts cart store operations and persistence failures.
type CartMetrics struct {
	operations      *prometheus.CounterVec
	persistFailures prometheus.Counter
}

// NewCartMetrics registers the cart operation counters.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart store mutations by operation.",
	}, []string{"operation"})
	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Best-effort cart persistence writes that failed.",
	})
	reg.MustRegister(operations, persistFailures)
	return &CartMetrics{operations: operations, persistFailures: persistFailures}
}

// IncOperation counts one cart mutation.
func (c *CartMetrics) IncOperation(operation string) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncPersistFailure counts a swallowed storage write error.
func (c *CartMetrics) IncPersistFailure() {
	if c == nil || c.persistFailures == nil {
		return
	}
	c.persistFailures.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
