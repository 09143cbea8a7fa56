package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decision validation engine.
type Metrics struct {
	// Corrections by rule identifier
	RuleFired *prometheus.CounterVec

	// Final decisions by outcome
	Outcome *prometheus.CounterVec

	// Per-party validation latency (pure computation, should stay sub-ms)
	ValidateLatency prometheus.Histogram
}

// New creates a new Metrics instance with all engine metrics registered.
func New() *Metrics {
	return &Metrics{
		RuleFired: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "claims_decision_rules_fired_total",
			Help: "Total decision corrections by validation rule",
		}, []string{"rule"}),

		Outcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "claims_decision_outcomes_total",
			Help: "Total validated decision outcomes by final decision",
		}, []string{"decision"}),

		ValidateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "claims_decision_validate_duration_seconds",
			Help:    "Duration of a single party validation pass",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
	}
}

// IncrementRuleFired records a rule correction.
func (m *Metrics) IncrementRuleFired(rule string) {
	if m != nil {
		m.RuleFired.WithLabelValues(rule).Inc()
	}
}

// IncrementOutcome records a final decision outcome.
func (m *Metrics) IncrementOutcome(decision string) {
	if m != nil {
		m.Outcome.WithLabelValues(decision).Inc()
	}
}

// ObserveValidateLatency records the duration of one validation pass.
func (m *Metrics) ObserveValidateLatency(d time.Duration) {
	if m != nil {
		m.ValidateLatency.Observe(d.Seconds())
	}
}
