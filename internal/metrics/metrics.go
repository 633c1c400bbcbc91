// Package metrics defines the Prometheus metrics of the contacts service.
// Metrics are registered with the default registry on package load and are
// served by the HTTP handler at /metrics.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/MKhiriev/go-contacts/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "contacts"

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts served requests.
// Labels:
//   - route: chi route pattern (e.g. "/contacts/{id}")
//   - method: HTTP method
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by route, method and status.",
	},
	[]string{"route", "method", "status"},
)

// HTTPRequestDuration measures request latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests, by route and method.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)

// RateLimitedTotal counts requests rejected with 429.
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter, by route.",
	},
	[]string{"route"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreOperationsTotal counts contact store calls.
// Labels:
//   - operation: "list", "get", "create", "update", "delete", "search" or "birthdays"
//   - result: "ok", "not_found", "conflict" or "error"
var StoreOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operations_total",
		Help:      "Total number of contact store operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// DatabaseUp is 1 while the last health probe succeeded.
var DatabaseUp = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "database_up",
		Help:      "Whether the last database health probe succeeded.",
	},
)

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveStoreOperation records the outcome of a store call.
func ObserveStoreOperation(operation string, err error) {
	StoreOperationsTotal.WithLabelValues(operation, storeResult(err)).Inc()
}

func storeResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, store.ErrContactNotFound):
		return "not_found"
	case errors.Is(err, store.ErrDuplicateEmail):
		return "conflict"
	default:
		return "error"
	}
}

// SetDatabaseUp records the result of a database health probe.
func SetDatabaseUp(up bool) {
	if up {
		DatabaseUp.Set(1)
		return
	}
	DatabaseUp.Set(0)
}
