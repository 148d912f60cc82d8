package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics provides observability for report submissions.
type Metrics struct {
	ReportsSubmitted *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
	SubmitLatency    prometheus.Histogram
}

// New registers the report metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReportsSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payequity_reports_submitted_total",
			Help: "Total compliance reports submitted by verdict outcome",
		}, []string{"outcome"}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payequity_verdict_cache_lookups_total",
			Help: "Verdict cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss", "error"

		SubmitLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "payequity_report_submit_duration_seconds",
			Help:    "Duration of report submission including analysis and persistence",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementSubmitted records a stored report.
func (m *Metrics) IncrementSubmitted(outcome string) {
	if m != nil {
		m.ReportsSubmitted.WithLabelValues(outcome).Inc()
	}
}

// IncrementCacheLookup records a verdict cache lookup.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}

// ObserveSubmitLatency records the total submit duration.
func (m *Metrics) ObserveSubmitLatency(d time.Duration) {
	if m != nil {
		m.SubmitLatency.Observe(d.Seconds())
	}
}
