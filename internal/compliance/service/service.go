// Package service runs compliance analyses with validation, logging and metrics
// around the pure engine.
package service

import (
	"context"
	"log/slog"
	"time"

	"payequity/internal/compliance"
	"payequity/internal/compliance/metrics"
	"payequity/internal/dataset"
)

// Service validates job classes and analyzes them.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New creates a compliance service.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze validates jobs and returns the verdict. Validation failures carry
// dErrors.CodeValidation; the engine itself never fails.
func (s *Service) Analyze(ctx context.Context, jobs []compliance.JobClass) (*compliance.Verdict, error) {
	if err := dataset.Validate(jobs); err != nil {
		return nil, err
	}

	start := time.Now()
	verdict := compliance.Analyze(jobs)
	elapsed := time.Since(start)

	outcome := verdict.Outcome()
	s.metrics.ObserveAnalyzeLatency(elapsed)
	s.metrics.ObserveDatasetSize(len(jobs))
	s.metrics.IncrementVerdict(string(verdict.State), string(outcome))

	if s.logger != nil {
		s.logger.DebugContext(ctx, "compliance analyzed",
			"job_classes", len(jobs),
			"state", verdict.State,
			"outcome", outcome,
			"duration_us", elapsed.Microseconds(),
		)
	}
	return &verdict, nil
}
