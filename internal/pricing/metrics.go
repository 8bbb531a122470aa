package pricing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "rentalpricing"

// Metrics holds the Prometheus collectors for rate refreshes and
// consistency checks. A nil *Metrics is valid and records nothing.
type Metrics struct {
	rateFetches       *prometheus.CounterVec
	rate              prometheus.Gauge
	consistencyChecks *prometheus.CounterVec
	mismatches        *prometheus.CounterVec
}

// NewMetrics registers the pricing collectors on reg. A nil reg builds
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		rateFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "platform_fee_rate_fetches_total",
			Help:      "Platform fee rate refresh attempts by result.",
		}, []string{"result"}),
		rate: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "platform_fee_rate",
			Help:      "Platform fee rate currently served from the cache.",
		}),
		consistencyChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "consistency_checks_total",
			Help:      "Frontend/backend breakdown comparisons by result.",
		}, []string{"result"}),
		mismatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "consistency_mismatches_total",
			Help:      "Breakdown fields that diverged beyond tolerance.",
		}, []string{"field"}),
	}
}

func (m *Metrics) observeRateFetch(ok bool, rate float64) {
	if m == nil {
		return
	}
	if !ok {
		m.rateFetches.WithLabelValues("failure").Inc()
		return
	}
	m.rateFetches.WithLabelValues("success").Inc()
	m.rate.Set(rate)
}

func (m *Metrics) observeConsistency(report ConsistencyReport) {
	if m == nil {
		return
	}
	if report.IsValid {
		m.consistencyChecks.WithLabelValues("valid").Inc()
		return
	}
	m.consistencyChecks.WithLabelValues("invalid").Inc()
	for _, e := range report.Errors {
		m.mismatches.WithLabelValues(e.Field).Inc()
	}
}
