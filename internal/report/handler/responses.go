package handler

import (
	"time"

	"github.com/google/uuid"

	"payequity/internal/compliance"
	"payequity/internal/report/models"
)

// ReportResponse is the full view of one report.
type ReportResponse struct {
	ID           uuid.UUID             `json:"id"`
	Jurisdiction string                `json:"jurisdiction"`
	ReportYear   int                   `json:"report_year"`
	Outcome      compliance.Outcome    `json:"outcome"`
	Fingerprint  string                `json:"fingerprint"`
	CacheHit     bool                  `json:"cache_hit"`
	Jobs         []compliance.JobClass `json:"jobs"`
	Verdict      compliance.Verdict    `json:"verdict"`
	SubmittedAt  time.Time             `json:"submitted_at"`
	AnalyzedAt   time.Time             `json:"analyzed_at"`
}

// ReportSummary is one row of a report listing.
type ReportSummary struct {
	ID                   uuid.UUID          `json:"id"`
	ReportYear           int                `json:"report_year"`
	JobClasses           int                `json:"job_classes"`
	Outcome              compliance.Outcome `json:"outcome"`
	IsCompliant          bool               `json:"is_compliant"`
	RequiresManualReview bool               `json:"requires_manual_review"`
	SubmittedAt          time.Time          `json:"submitted_at"`
}

// ListResponse is the HTTP response for GET /v1/reports.
type ListResponse struct {
	Jurisdiction string          `json:"jurisdiction"`
	Reports      []ReportSummary `json:"reports"`
}

// FromReport converts a stored report into its HTTP view.
func FromReport(r *models.Report) *ReportResponse {
	return &ReportResponse{
		ID:           r.ID,
		Jurisdiction: r.Jurisdiction,
		ReportYear:   r.ReportYear,
		Outcome:      r.Outcome(),
		Fingerprint:  r.Fingerprint,
		CacheHit:     r.CacheHit,
		Jobs:         r.Jobs,
		Verdict:      r.Verdict,
		SubmittedAt:  r.SubmittedAt,
		AnalyzedAt:   r.AnalyzedAt,
	}
}

// FromReports converts a listing.
func FromReports(jurisdiction string, reports []*models.Report) *ListResponse {
	resp := &ListResponse{
		Jurisdiction: jurisdiction,
		Reports:      make([]ReportSummary, 0, len(reports)),
	}
	for _, r := range reports {
		resp.Reports = append(resp.Reports, ReportSummary{
			ID:                   r.ID,
			ReportYear:           r.ReportYear,
			JobClasses:           len(r.Jobs),
			Outcome:              r.Outcome(),
			IsCompliant:          r.Verdict.IsCompliant,
			RequiresManualReview: r.Verdict.RequiresManualReview,
			SubmittedAt:          r.SubmittedAt,
		})
	}
	return resp
}
