// Package service accepts annual compliance reports, analyzes them, and keeps
// the record.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"payequity/internal/compliance"
	"payequity/internal/report/metrics"
	"payequity/internal/report/models"
	"payequity/internal/report/ports"
	dErrors "payequity/pkg/domain-errors"
	"payequity/pkg/platform/audit"
	"payequity/pkg/platform/sentinel"
	"payequity/pkg/requestcontext"
)

const (
	minReportYear = 1900
	maxReportYear = 2200

	maxJurisdictionLength = 200
)

// Service coordinates analysis, caching, persistence and audit for reports.
type Service struct {
	store    ports.Store
	analyzer ports.Analyzer
	cache    ports.VerdictCache
	auditor  ports.AuditPublisher
	ops      ports.AuditPublisher
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithCache sets the verdict cache. Defaults to no caching.
func WithCache(cache ports.VerdictCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithAuditPublisher sets the audit publisher.
func WithAuditPublisher(auditor ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = auditor
	}
}

// WithOpsPublisher routes operations events (report views) to a separate,
// best-effort publisher. Without it they go to the audit publisher.
func WithOpsPublisher(ops ports.AuditPublisher) Option {
	return func(s *Service) {
		s.ops = ops
	}
}

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

// WithTracer overrides the global OpenTelemetry tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New creates a report service.
func New(store ports.Store, analyzer ports.Analyzer, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("report store is required")
	}
	if analyzer == nil {
		return nil, errors.New("analyzer is required")
	}
	s := &Service{
		store:    store,
		analyzer: analyzer,
		tracer:   otel.Tracer("payequity/internal/report"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit analyzes and stores a jurisdiction's report. A dataset seen before
// reuses its cached verdict. Cache and audit failures never fail the submit.
func (s *Service) Submit(ctx context.Context, req models.SubmitRequest) (*models.Report, error) {
	start := time.Now()
	req.Jurisdiction = strings.TrimSpace(req.Jurisdiction)

	ctx, span := s.tracer.Start(ctx, "report.Submit", trace.WithAttributes(
		attribute.String("payequity.jurisdiction", req.Jurisdiction),
		attribute.Int("payequity.report_year", req.ReportYear),
		attribute.Int("payequity.job_classes", len(req.Jobs)),
	))
	defer span.End()

	if err := validateSubmit(req); err != nil {
		span.SetStatus(codes.Error, "invalid report")
		return nil, err
	}

	fingerprint, err := Fingerprint(req.Jobs)
	if err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fingerprint report")
	}

	verdict, cacheHit := s.cachedVerdict(ctx, fingerprint)
	if !cacheHit {
		analyzed, err := s.analyzer.Analyze(ctx, req.Jobs)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "analysis rejected")
			return nil, err
		}
		verdict = *analyzed
		s.cacheVerdict(ctx, fingerprint, verdict)
	}

	now := requestcontext.Now(ctx)
	report := &models.Report{
		ID:           uuid.New(),
		Jurisdiction: req.Jurisdiction,
		ReportYear:   req.ReportYear,
		Jobs:         req.Jobs,
		Verdict:      verdict,
		Fingerprint:  fingerprint,
		CacheHit:     cacheHit,
		SubmittedAt:  now,
		AnalyzedAt:   now,
	}
	if err := s.store.Save(ctx, report); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "report already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save report")
	}

	outcome := report.Outcome()
	span.SetAttributes(
		attribute.String("payequity.outcome", string(outcome)),
		attribute.Bool("payequity.cache_hit", cacheHit),
	)

	s.emitAudit(ctx, audit.Event{
		Subject:      report.ID.String(),
		Action:       string(audit.EventReportAnalyzed),
		Jurisdiction: report.Jurisdiction,
		ReportYear:   report.ReportYear,
		Decision:     string(outcome),
		Reason:       report.Verdict.Message,
		RequestID:    requestcontext.RequestID(ctx),
		Timestamp:    now,
	})

	s.metrics.IncrementSubmitted(string(outcome))
	s.metrics.ObserveSubmitLatency(time.Since(start))

	if s.logger != nil {
		s.logger.InfoContext(ctx, "compliance report submitted",
			"report_id", report.ID,
			"jurisdiction", report.Jurisdiction,
			"report_year", report.ReportYear,
			"job_classes", len(report.Jobs),
			"outcome", outcome,
			"cache_hit", cacheHit,
		)
	}
	return report, nil
}

// Get returns a stored report.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	report, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "report not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load report")
	}

	s.emitOps(ctx, audit.Event{
		Subject:      report.ID.String(),
		Action:       string(audit.EventReportViewed),
		Jurisdiction: report.Jurisdiction,
		ReportYear:   report.ReportYear,
		RequestID:    requestcontext.RequestID(ctx),
		Timestamp:    requestcontext.Now(ctx),
	})
	return report, nil
}

// List returns a jurisdiction's reports, newest reporting year first.
func (s *Service) List(ctx context.Context, jurisdiction string) ([]*models.Report, error) {
	jurisdiction = strings.TrimSpace(jurisdiction)
	if jurisdiction == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "jurisdiction is required")
	}
	reports, err := s.store.ListByJurisdiction(ctx, jurisdiction)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list reports")
	}
	return reports, nil
}

// Fingerprint is the SHA-256 of the canonical JSON encoding of jobs. Nil and
// empty lists share a fingerprint.
func Fingerprint(jobs []compliance.JobClass) (string, error) {
	if jobs == nil {
		jobs = []compliance.JobClass{}
	}
	data, err := json.Marshal(jobs)
	if err != nil {
		return "", fmt.Errorf("encode jobs: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func validateSubmit(req models.SubmitRequest) error {
	if req.Jurisdiction == "" {
		return dErrors.New(dErrors.CodeValidation, "jurisdiction is required")
	}
	if len(req.Jurisdiction) > maxJurisdictionLength {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("jurisdiction must be at most %d characters", maxJurisdictionLength))
	}
	if req.ReportYear < minReportYear || req.ReportYear > maxReportYear {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("report_year must be between %d and %d", minReportYear, maxReportYear))
	}
	return nil
}

func (s *Service) cachedVerdict(ctx context.Context, fingerprint string) (compliance.Verdict, bool) {
	if s.cache == nil {
		return compliance.Verdict{}, false
	}
	v, err := s.cache.Get(ctx, fingerprint)
	switch {
	case err == nil:
		s.metrics.IncrementCacheLookup(metrics.CacheHit)
		return *v, true
	case errors.Is(err, sentinel.ErrNotFound):
		s.metrics.IncrementCacheLookup(metrics.CacheMiss)
	default:
		s.metrics.IncrementCacheLookup(metrics.CacheError)
		if s.logger != nil {
			s.logger.WarnContext(ctx, "verdict cache lookup failed",
				"fingerprint", fingerprint,
				"error", err,
			)
		}
	}
	return compliance.Verdict{}, false
}

func (s *Service) cacheVerdict(ctx context.Context, fingerprint string, v compliance.Verdict) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, fingerprint, v); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to cache verdict",
			"fingerprint", fingerprint,
			"error", err,
		)
	}
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"subject", event.Subject,
			"error", err,
		)
	}
}

func (s *Service) emitOps(ctx context.Context, event audit.Event) {
	if s.ops == nil {
		s.emitAudit(ctx, event)
		return
	}
	if err := s.ops.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit operations event",
			"action", event.Action,
			"subject", event.Subject,
			"error", err,
		)
	}
}
