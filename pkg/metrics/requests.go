package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics records outcomes of calls against the remote storefront services.
type RequestMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewRequestMetrics registers the request metrics on the provided registerer.
func NewRequestMetrics(reg prometheus.Registerer) *RequestMetrics {
	if reg == nil {
		return &RequestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "remote_request_duration_seconds",
		Help:    "Duration of remote service requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"service", "operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remote_request_success",
		Help: "Successful remote service requests.",
	}, []string{"service", "operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remote_request_failure",
		Help: "Failed remote service requests.",
	}, []string{"service", "operation", "code"})
	reg.MustRegister(duration, success, failure)
	return &RequestMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for one request.
func (r *RequestMetrics) ObserveDuration(service, operation string, duration time.Duration) {
	if r == nil || r.duration == nil {
		return
	}
	r.duration.WithLabelValues(normalizeLabel(service), normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for one request.
func (r *RequestMetrics) IncSuccess(service, operation string) {
	if r == nil || r.success == nil {
		return
	}
	r.success.WithLabelValues(normalizeLabel(service), normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter with the typed error code.
func (r *RequestMetrics) IncFailure(service, operation, code string) {
	if r == nil || r.failure == nil {
		return
	}
	r.failure.WithLabelValues(normalizeLabel(service), normalizeLabel(operation), normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return strings.ReplaceAll(value, " ", "_")
}
