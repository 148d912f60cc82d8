// Package postgres persists audit events in the compliance_audit_events table.
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	audit "payequity/pkg/platform/audit"
)

const schema = `
CREATE TABLE IF NOT EXISTS compliance_audit_events (
	id            TEXT PRIMARY KEY,
	category      TEXT        NOT NULL,
	occurred_at   TIMESTAMPTZ NOT NULL,
	subject       TEXT        NOT NULL,
	action        TEXT        NOT NULL,
	jurisdiction  TEXT        NOT NULL DEFAULT '',
	report_year   INTEGER     NOT NULL DEFAULT 0,
	decision      TEXT        NOT NULL DEFAULT '',
	reason        TEXT        NOT NULL DEFAULT '',
	request_id    TEXT        NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS compliance_audit_events_subject_idx
	ON compliance_audit_events (subject, occurred_at);
`

const selectColumns = `id, category, occurred_at, subject, action, jurisdiction, report_year, decision, reason, request_id`

// Store implements audit.Store on PostgreSQL. Appends are idempotent on
// event ID so redelivered events are ignored.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a PostgreSQL audit store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the audit table and index when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	query := `
		INSERT INTO compliance_audit_events (` + selectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.pool.Exec(ctx, query,
		event.ID,
		string(event.Category),
		event.Timestamp,
		event.Subject,
		event.Action,
		event.Jurisdiction,
		event.ReportYear,
		event.Decision,
		event.Reason,
		event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListBySubject returns a subject's events, oldest first.
func (s *Store) ListBySubject(ctx context.Context, subject string) ([]audit.Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+selectColumns+`
		FROM compliance_audit_events
		WHERE subject = $1
		ORDER BY occurred_at, id
	`, subject)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	events, err := pgx.CollectRows(rows, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("scan audit events: %w", err)
	}
	return events, nil
}

func scanEvent(row pgx.CollectableRow) (audit.Event, error) {
	var (
		e        audit.Event
		category string
	)
	err := row.Scan(
		&e.ID,
		&category,
		&e.Timestamp,
		&e.Subject,
		&e.Action,
		&e.Jurisdiction,
		&e.ReportYear,
		&e.Decision,
		&e.Reason,
		&e.RequestID,
	)
	e.Category = audit.EventCategory(category)
	return e, err
}
