// Package metrics provides Prometheus instrumentation for claim processing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CasesProcessed  *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	ProcessDuration prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		CasesProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "claims_cases_processed_total",
			Help: "Processed accident claims by outcome.",
		}, []string{"status"}),
		CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "claims_result_cache_lookups_total",
			Help: "Validated-result cache lookups by result.",
		}, []string{"result"}),
		ProcessDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "claims_case_process_duration_seconds",
			Help:    "End-to-end processing latency per claim.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementProcessed(status string) {
	if m == nil {
		return
	}
	m.CasesProcessed.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrementCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveProcessDuration(seconds float64) {
	if m == nil {
		return
	}
	m.ProcessDuration.Observe(seconds)
}
