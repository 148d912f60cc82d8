package handler

import (
	"fmt"
	"strings"

	"payequity/internal/compliance"
	dErrors "payequity/pkg/domain-errors"
)

// MaxJobClasses bounds a single analysis request.
const MaxJobClasses = 10000

// AnalyzeRequest is the HTTP request body for POST /v1/compliance/analyze.
type AnalyzeRequest struct {
	Jurisdiction string                `json:"jurisdiction,omitempty"`
	Jobs         []compliance.JobClass `json:"jobs"`
}

// Validate implements httputil.Validatable. Row-level checks belong to the service.
func (r *AnalyzeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Jobs == nil {
		return dErrors.New(dErrors.CodeValidation, "jobs is required")
	}
	if len(r.Jobs) > MaxJobClasses {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("at most %d job classes per request", MaxJobClasses))
	}
	r.Jurisdiction = strings.TrimSpace(r.Jurisdiction)
	if len(r.Jurisdiction) > 200 {
		return dErrors.New(dErrors.CodeValidation, "jurisdiction must be at most 200 characters")
	}
	return nil
}
