// Package models holds the annual compliance report submitted by a jurisdiction.
package models

import (
	"time"

	"github.com/google/uuid"

	"payequity/internal/compliance"
)

// Report is one jurisdiction's submission for one reporting year, together
// with the verdict issued for it.
type Report struct {
	ID           uuid.UUID             `json:"id"`
	Jurisdiction string                `json:"jurisdiction"`
	ReportYear   int                   `json:"report_year"`
	Jobs         []compliance.JobClass `json:"jobs"`
	Verdict      compliance.Verdict    `json:"verdict"`
	Fingerprint  string                `json:"fingerprint"`
	CacheHit     bool                  `json:"cache_hit"`
	SubmittedAt  time.Time             `json:"submitted_at"`
	AnalyzedAt   time.Time             `json:"analyzed_at"`
}

// Outcome labels the report's verdict.
func (r *Report) Outcome() compliance.Outcome {
	return r.Verdict.Outcome()
}

// SubmitRequest carries a new report into the service.
type SubmitRequest struct {
	Jurisdiction string
	ReportYear   int
	Jobs         []compliance.JobClass
}
