package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream call outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeEmpty         = "empty"
	OutcomeUpstreamError = "upstream_error"
	OutcomeTransport     = "transport_error"
	OutcomeConfig        = "config_error"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tripplanbuddy",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tripplanbuddy",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tripplanbuddy",
		Name:      "completion_requests_total",
		Help:      "Completion-service calls by outcome.",
	}, []string{"outcome"})

	upstreamLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tripplanbuddy",
		Name:      "completion_request_duration_seconds",
		Help:      "Completion-service call latency.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	})
)

func ObserveHTTP(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveUpstream records one completion call. Config errors never reach the
// network, so their latency is not recorded.
func ObserveUpstream(outcome string, d time.Duration) {
	upstreamRequests.WithLabelValues(outcome).Inc()
	if outcome != OutcomeConfig {
		upstreamLatency.Observe(d.Seconds())
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
