package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the matching engine.
type Metrics struct {
	MatchRequests        prometheus.Counter
	MatchDuration        prometheus.Histogram
	SchemesLoaded        prometheus.Gauge
	SchemesSkipped       prometheus.Gauge
	CatalogReloads       prometheus.Counter
	TranslationFallbacks *prometheus.CounterVec
	EstimationFlags      prometheus.Counter
}

// New creates a Metrics instance registered against the given
// registerer. Pass prometheus.DefaultRegisterer in production; tests
// use a fresh registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MatchRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "schemematch_match_requests_total",
			Help: "Total number of match requests served",
		}),
		MatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "schemematch_match_duration_seconds",
			Help:    "Duration of full-catalog match evaluations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		SchemesLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "schemematch_catalog_schemes_loaded",
			Help: "Number of active schemes in the current catalog snapshot",
		}),
		SchemesSkipped: factory.NewGauge(prometheus.GaugeOpts{
			Name: "schemematch_catalog_schemes_skipped",
			Help: "Number of scheme definitions rejected at the last load",
		}),
		CatalogReloads: factory.NewCounter(prometheus.CounterOpts{
			Name: "schemematch_catalog_reloads_total",
			Help: "Total number of catalog snapshot reloads",
		}),
		TranslationFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "schemematch_translation_fallbacks_total",
			Help: "Explanations rendered in English because the requested language had no template",
		}, []string{"language"}),
		EstimationFlags: factory.NewCounter(prometheus.CounterOpts{
			Name: "schemematch_benefit_estimation_flags_total",
			Help: "Benefit estimations that degraded to zero with a low-confidence flag",
		}),
	}
}

// ObserveMatch records one completed match request.
func (m *Metrics) ObserveMatch(start time.Time) {
	m.MatchRequests.Inc()
	m.MatchDuration.Observe(time.Since(start).Seconds())
}

// ObserveCatalog records the outcome of a catalog load.
func (m *Metrics) ObserveCatalog(loaded, skipped int) {
	m.CatalogReloads.Inc()
	m.SchemesLoaded.Set(float64(loaded))
	m.SchemesSkipped.Set(float64(skipped))
}

// IncrementTranslationFallback records an English-fallback render for
// the requested language.
func (m *Metrics) IncrementTranslationFallback(language string) {
	m.TranslationFallbacks.WithLabelValues(language).Inc()
}

// IncrementEstimationFlag records a degraded benefit estimation.
func (m *Metrics) IncrementEstimationFlag() {
	m.EstimationFlags.Inc()
}
