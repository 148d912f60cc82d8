// Package ports declares what the report service needs from the outside world.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks Store,VerdictCache,Analyzer,AuditPublisher

import (
	"context"

	"github.com/google/uuid"

	"payequity/internal/compliance"
	"payequity/internal/report/models"
	"payequity/pkg/platform/audit"
)

// Store persists reports. FindByID returns sentinel.ErrNotFound for unknown IDs.
type Store interface {
	Save(ctx context.Context, report *models.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	// ListByJurisdiction returns newest reporting year first.
	ListByJurisdiction(ctx context.Context, jurisdiction string) ([]*models.Report, error)
}

// VerdictCache memoizes verdicts by dataset fingerprint. Get returns
// sentinel.ErrNotFound on a miss.
type VerdictCache interface {
	Get(ctx context.Context, fingerprint string) (*compliance.Verdict, error)
	Set(ctx context.Context, fingerprint string, verdict compliance.Verdict) error
}

// Analyzer validates and analyzes job classes.
type Analyzer interface {
	Analyze(ctx context.Context, jobs []compliance.JobClass) (*compliance.Verdict, error)
}

// AuditPublisher emits compliance audit events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
