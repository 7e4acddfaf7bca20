// Package monitoring provides Prometheus instrumentation for the HTTP
// surface and the conversion pipeline.
package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	conversionsTotal    *prometheus.CounterVec
	recipesCalculated   prometheus.Counter
	recipeIngredients   prometheus.Histogram
	lookupCacheOps      *prometheus.CounterVec
}

// New registers the collectors with the given registerer. Pass
// prometheus.DefaultRegisterer in production.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nutrilabel_http_requests_total",
			Help: "HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nutrilabel_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		conversionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nutrilabel_conversions_total",
			Help: "Measurement conversions by resolution source and confidence.",
		}, []string{"source", "confidence"}),
		recipesCalculated: factory.NewCounter(prometheus.CounterOpts{
			Name: "nutrilabel_recipes_calculated_total",
			Help: "Completed full-recipe nutrition calculations.",
		}),
		recipeIngredients: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nutrilabel_recipe_ingredient_count",
			Help:    "Ingredients per calculated recipe.",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		}),
		lookupCacheOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nutrilabel_lookup_cache_ops_total",
			Help: "Food lookup cache accesses by result.",
		}, []string{"result"}),
	}
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveConversion records one measurement resolution.
func (m *Metrics) ObserveConversion(source, confidence string) {
	m.conversionsTotal.WithLabelValues(source, confidence).Inc()
}

// ObserveRecipeCalculation records one completed recipe calculation.
func (m *Metrics) ObserveRecipeCalculation(ingredientCount int) {
	m.recipesCalculated.Inc()
	m.recipeIngredients.Observe(float64(ingredientCount))
}

// ObserveLookupCache records a food lookup cache access.
func (m *Metrics) ObserveLookupCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookupCacheOps.WithLabelValues(result).Inc()
}
