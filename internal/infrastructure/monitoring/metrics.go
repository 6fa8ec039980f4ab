// Package monitoring provides metrics, tracing and error reporting
package monitoring

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics handles Prometheus metrics collection. Every collector is
// registered on its own registry so tests can build isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Upstream completion API metrics
	apiCallsTotal   *prometheus.CounterVec
	apiCallDuration *prometheus.HistogramVec

	// Business metrics
	activeUsers         prometheus.Gauge
	recipesCreatedTotal prometheus.Counter
	mealPlansGenerated  prometheus.Counter
	rateLimitRemaining  prometheus.Gauge
}

// NewMetrics creates a new metrics collector with Go runtime and process collectors
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		apiCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_calls_total",
				Help: "Total number of external API calls",
			},
			[]string{"service", "operation", "status"},
		),
		apiCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "api_call_duration_seconds",
				Help:    "External API call duration in seconds",
				Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{"service", "operation"},
		),

		activeUsers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_users_total",
				Help: "Number of active users",
			},
		),
		recipesCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "recipes_created_total",
				Help: "Total number of recipes created",
			},
		),
		mealPlansGenerated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "meal_plans_generated_total",
				Help: "Total number of meal plans generated",
			},
		),
		rateLimitRemaining: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rate_limit_remaining",
				Help: "Requests remaining for the most recently checked client",
			},
		),
	}
}

// RegisterDBStats exposes connection pool statistics for db
func (m *Metrics) RegisterDBStats(db *sql.DB, name string) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// HTTPRequest records a finished HTTP request
func (m *Metrics) HTTPRequest(method, endpoint, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// APICall records one call to an external API
func (m *Metrics) APICall(service, operation, status string, duration time.Duration) {
	m.apiCallsTotal.WithLabelValues(service, operation, status).Inc()
	m.apiCallDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// Business metric methods
func (m *Metrics) SetActiveUsers(n int64) {
	m.activeUsers.Set(float64(n))
}

func (m *Metrics) RecipeCreated() {
	m.recipesCreatedTotal.Inc()
}

func (m *Metrics) MealPlanGenerated() {
	m.mealPlansGenerated.Inc()
}

func (m *Metrics) SetRateLimitRemaining(remaining int) {
	m.rateLimitRemaining.Set(float64(remaining))
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus metrics HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
