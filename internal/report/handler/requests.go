package handler

import (
	"strings"

	"payequity/internal/compliance"
	"payequity/internal/report/models"
	dErrors "payequity/pkg/domain-errors"
)

// SubmitRequest is the HTTP request body for POST /v1/reports.
type SubmitRequest struct {
	Jurisdiction string                `json:"jurisdiction"`
	ReportYear   int                   `json:"report_year"`
	Jobs         []compliance.JobClass `json:"jobs"`
}

// Validate implements httputil.Validatable. Range and row checks belong to the service.
func (r *SubmitRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Jurisdiction = strings.TrimSpace(r.Jurisdiction)
	if r.Jurisdiction == "" {
		return dErrors.New(dErrors.CodeValidation, "jurisdiction is required")
	}
	if r.ReportYear == 0 {
		return dErrors.New(dErrors.CodeValidation, "report_year is required")
	}
	if r.Jobs == nil {
		return dErrors.New(dErrors.CodeValidation, "jobs is required")
	}
	return nil
}

// ToModel converts the request into the service input.
func (r *SubmitRequest) ToModel() models.SubmitRequest {
	return models.SubmitRequest{
		Jurisdiction: r.Jurisdiction,
		ReportYear:   r.ReportYear,
		Jobs:         r.Jobs,
	}
}
