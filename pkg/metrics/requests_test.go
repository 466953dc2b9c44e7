package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestMetricsCounts(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewRequestMetrics(reg)

	m.IncSuccess("cart", "fetch")
	m.IncSuccess("cart", "fetch")
	m.IncFailure("cart", "add", "NETWORK_ERROR")
	m.ObserveDuration("cart", "fetch", 120*time.Millisecond)

	if got := testutil.ToFloat64(m.success.WithLabelValues("cart", "fetch")); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(m.failure.WithLabelValues("cart", "add", "network_error")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
}

func TestRequestMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *RequestMetrics
	m.IncSuccess("cart", "fetch")
	m.IncFailure("cart", "fetch", "SERVER_ERROR")
	m.ObserveDuration("cart", "fetch", time.Second)

	unregistered := NewRequestMetrics(nil)
	unregistered.IncSuccess("wishlist", "toggle")
}
