// Package ops records best-effort operations audit events such as report
// lookups.
//
// Unlike compliance events, losing an operations event never fails the
// caller: events may be sampled out, and a circuit breaker drops them while
// the sink is failing.
package ops

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	audit "payequity/pkg/platform/audit"
	"payequity/pkg/platform/circuit"
)

// Publisher emits operations events.
type Publisher struct {
	store   audit.Store
	sampler *Sampler
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithSampler sets the sampler. Defaults to keeping every event.
func WithSampler(s *Sampler) Option {
	return func(p *Publisher) {
		p.sampler = s
	}
}

// WithBreaker sets the sink circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(p *Publisher) {
		p.breaker = b
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// New creates an operations publisher over store.
func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:   store,
		sampler: NewSampler(1),
		breaker: circuit.New("audit-ops", circuit.WithFailureThreshold(5), circuit.WithCooldown(time.Minute)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit records event if it survives sampling and the sink is healthy. It
// always returns nil.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if !p.sampler.Keep(event.Action) {
		p.metrics.IncSampledOut()
		return nil
	}
	if !p.breaker.Allow() {
		p.metrics.IncBreakerDropped()
		return nil
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Category = audit.AuditEvent(event.Action).Category()

	if err := p.store.Append(ctx, event); err != nil {
		p.metrics.IncPersistFailures()
		if _, change := p.breaker.RecordFailure(); change.Opened {
			p.metrics.SetBreakerOpen(true)
			if p.logger != nil {
				p.logger.WarnContext(ctx, "operations audit sink failing, dropping events",
					"action", event.Action,
					"error", err,
				)
			}
		}
		return nil
	}

	p.metrics.IncRecorded()
	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.metrics.SetBreakerOpen(false)
		if p.logger != nil {
			p.logger.InfoContext(ctx, "operations audit sink recovered")
		}
	}
	return nil
}
