package handler

import (
	"time"

	"payequity/internal/compliance"
)

// AnalyzeResponse is the HTTP response for POST /v1/compliance/analyze.
type AnalyzeResponse struct {
	Jurisdiction string             `json:"jurisdiction,omitempty"`
	JobClasses   int                `json:"job_classes"`
	Outcome      compliance.Outcome `json:"outcome"`
	Verdict      compliance.Verdict `json:"verdict"`
	AnalyzedAt   time.Time          `json:"analyzed_at"`
}

// FromVerdict converts a verdict into the HTTP response.
func FromVerdict(req *AnalyzeRequest, v *compliance.Verdict, analyzedAt time.Time) *AnalyzeResponse {
	return &AnalyzeResponse{
		Jurisdiction: req.Jurisdiction,
		JobClasses:   len(req.Jobs),
		Outcome:      v.Outcome(),
		Verdict:      *v,
		AnalyzedAt:   analyzedAt,
	}
}
