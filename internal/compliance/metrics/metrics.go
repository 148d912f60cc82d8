package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for compliance analysis.
type Metrics struct {
	// Verdicts by terminal state and outcome
	Verdicts *prometheus.CounterVec

	// Job classes per analyzed dataset
	DatasetSize prometheus.Histogram

	// Engine latency
	AnalyzeLatency prometheus.Histogram
}

// New registers the compliance metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payequity_compliance_verdicts_total",
			Help: "Total compliance verdicts by state and outcome",
		}, []string{"state", "outcome"}), // outcome: "compliant", "not_compliant", "manual_review", "no_data"

		DatasetSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "payequity_compliance_dataset_job_classes",
			Help:    "Number of job classes per analyzed dataset",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),

		AnalyzeLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "payequity_compliance_analyze_duration_seconds",
			Help:    "Duration of a single compliance analysis",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
	}
}

// IncrementVerdict records a verdict.
func (m *Metrics) IncrementVerdict(state, outcome string) {
	if m != nil {
		m.Verdicts.WithLabelValues(state, outcome).Inc()
	}
}

// ObserveDatasetSize records how many job classes were analyzed.
func (m *Metrics) ObserveDatasetSize(n int) {
	if m != nil {
		m.DatasetSize.Observe(float64(n))
	}
}

// ObserveAnalyzeLatency records engine duration.
func (m *Metrics) ObserveAnalyzeLatency(d time.Duration) {
	if m != nil {
		m.AnalyzeLatency.Observe(d.Seconds())
	}
}
