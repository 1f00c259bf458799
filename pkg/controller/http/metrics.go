package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/herbal/pkg/domain/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the web front-end
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
	sessions prometheus.Gauge
}

// NewMetrics creates collectors registered on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "herbal",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests served by the upload page",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "herbal",
			Name:      "detect_outcomes_total",
			Help:      "Number of detect actions by outcome",
		}, []string{"outcome"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "herbal",
			Name:      "sessions",
			Help:      "Number of live upload sessions",
		}),
	}
	m.registry.MustRegister(m.requests, m.outcomes, m.sessions)
	return m
}

// Handler exposes the collectors in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRequest(r *http.Request, status int, elapsed time.Duration) {
	route := "unmatched"
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		route = rctx.RoutePattern()
	}
	m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) observeOutcome(outcome model.Outcome) {
	m.outcomes.WithLabelValues(string(outcome)).Inc()
}
