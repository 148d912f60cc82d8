package ops

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for operations audit events.
type Metrics struct {
	Recorded        prometheus.Counter
	SampledOut      prometheus.Counter
	BreakerDropped  prometheus.Counter
	PersistFailures prometheus.Counter
	BreakerOpen     prometheus.Gauge
}

// NewMetrics registers operations audit metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Recorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "payequity_audit_ops_recorded_total",
			Help: "Operations audit events persisted",
		}),
		SampledOut: factory.NewCounter(prometheus.CounterOpts{
			Name: "payequity_audit_ops_sampled_out_total",
			Help: "Operations audit events dropped by sampling",
		}),
		BreakerDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "payequity_audit_ops_breaker_dropped_total",
			Help: "Operations audit events dropped while the sink breaker was open",
		}),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "payequity_audit_ops_persist_failures_total",
			Help: "Operations audit events that failed to persist",
		}),
		BreakerOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "payequity_audit_ops_breaker_open",
			Help: "1 while the operations audit sink breaker is open",
		}),
	}
}

func (m *Metrics) IncRecorded() {
	if m != nil {
		m.Recorded.Inc()
	}
}

func (m *Metrics) IncSampledOut() {
	if m != nil {
		m.SampledOut.Inc()
	}
}

func (m *Metrics) IncBreakerDropped() {
	if m != nil {
		m.BreakerDropped.Inc()
	}
}

func (m *Metrics) IncPersistFailures() {
	if m != nil {
		m.PersistFailures.Inc()
	}
}

func (m *Metrics) SetBreakerOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.BreakerOpen.Set(1)
	} else {
		m.BreakerOpen.Set(0)
	}
}
