package cache

import (
	"context"
	"errors"
	"log/slog"

	"payequity/internal/compliance"
	"payequity/internal/report/ports"
	"payequity/pkg/platform/circuit"
	"payequity/pkg/platform/sentinel"
)

// Guarded shields submissions from a failing cache. While the breaker is open
// lookups report a miss and writes are skipped, so a Redis outage costs one
// analysis per submission instead of a timeout.
type Guarded struct {
	next    ports.VerdictCache
	breaker *circuit.Breaker
	logger  *slog.Logger
}

// NewGuarded wraps next with breaker. logger may be nil.
func NewGuarded(next ports.VerdictCache, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	return &Guarded{next: next, breaker: breaker, logger: logger}
}

func (g *Guarded) Get(ctx context.Context, fingerprint string) (*compliance.Verdict, error) {
	if !g.breaker.Allow() {
		return nil, sentinel.ErrNotFound
	}
	v, err := g.next.Get(ctx, fingerprint)
	g.record(ctx, err)
	return v, err
}

func (g *Guarded) Set(ctx context.Context, fingerprint string, verdict compliance.Verdict) error {
	if !g.breaker.Allow() {
		return nil
	}
	err := g.next.Set(ctx, fingerprint, verdict)
	g.record(ctx, err)
	return err
}

func (g *Guarded) record(ctx context.Context, err error) {
	if err == nil || errors.Is(err, sentinel.ErrNotFound) {
		if _, change := g.breaker.RecordSuccess(); change.Closed && g.logger != nil {
			g.logger.InfoContext(ctx, "verdict cache recovered", "breaker", g.breaker.Name())
		}
		return
	}
	if !errors.Is(err, sentinel.ErrUnavailable) {
		return
	}
	if _, change := g.breaker.RecordFailure(); change.Opened && g.logger != nil {
		g.logger.WarnContext(ctx, "verdict cache unavailable, bypassing",
			"breaker", g.breaker.Name(),
			"error", err,
		)
	}
}
