package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"payequity/internal/report/models"
	"payequity/pkg/platform/sentinel"
)

const schema = `
CREATE TABLE IF NOT EXISTS compliance_reports (
	id            UUID PRIMARY KEY,
	jurisdiction  TEXT        NOT NULL,
	report_year   INTEGER     NOT NULL,
	fingerprint   TEXT        NOT NULL,
	outcome       TEXT        NOT NULL,
	cache_hit     BOOLEAN     NOT NULL DEFAULT FALSE,
	jobs          JSONB       NOT NULL,
	verdict       JSONB       NOT NULL,
	submitted_at  TIMESTAMPTZ NOT NULL,
	analyzed_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS compliance_reports_jurisdiction_idx
	ON compliance_reports (jurisdiction, report_year DESC, submitted_at DESC);
`

// uniqueViolation is the Postgres SQLSTATE for duplicate keys.
const uniqueViolation = "23505"

// PostgresStore persists reports in PostgreSQL. Job classes and verdicts are
// stored as JSONB next to indexed lookup columns.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed report store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the reports table and index when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure report schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, report *models.Report) error {
	if report == nil {
		return sentinel.ErrInvalidInput
	}
	jobs, err := json.Marshal(report.Jobs)
	if err != nil {
		return fmt.Errorf("marshal jobs: %w", err)
	}
	verdict, err := json.Marshal(report.Verdict)
	if err != nil {
		return fmt.Errorf("marshal verdict: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO compliance_reports
		   (id, jurisdiction, report_year, fingerprint, outcome, cache_hit, jobs, verdict, submitted_at, analyzed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		report.ID, report.Jurisdiction, report.ReportYear, report.Fingerprint, string(report.Outcome()),
		report.CacheHit, jobs, verdict, report.SubmittedAt, report.AnalyzedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("save report %s: %w", report.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("save report %s: %w", report.ID, err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, jurisdiction, report_year, fingerprint, cache_hit, jobs, verdict, submitted_at, analyzed_at
		 FROM compliance_reports WHERE id = $1`, id)
	report, err := scanReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find report %s: %w", id, err)
	}
	return report, nil
}

func (s *PostgresStore) ListByJurisdiction(ctx context.Context, jurisdiction string) ([]*models.Report, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, jurisdiction, report_year, fingerprint, cache_hit, jobs, verdict, submitted_at, analyzed_at
		 FROM compliance_reports
		 WHERE jurisdiction = $1
		 ORDER BY report_year DESC, submitted_at DESC`, jurisdiction)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*models.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func scanReport(row pgx.Row) (*models.Report, error) {
	var (
		r       models.Report
		jobs    []byte
		verdict []byte
	)
	if err := row.Scan(&r.ID, &r.Jurisdiction, &r.ReportYear, &r.Fingerprint, &r.CacheHit,
		&jobs, &verdict, &r.SubmittedAt, &r.AnalyzedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(jobs, &r.Jobs); err != nil {
		return nil, fmt.Errorf("unmarshal jobs: %w", err)
	}
	if err := json.Unmarshal(verdict, &r.Verdict); err != nil {
		return nil, fmt.Errorf("unmarshal verdict: %w", err)
	}
	return &r, nil
}
