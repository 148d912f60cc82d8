package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance: report
	// submissions and the verdicts issued for them.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers routine activity such as report lookups.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID           string        `json:"id"`
	Category     EventCategory `json:"category"`
	Timestamp    time.Time     `json:"timestamp"`
	Subject      string        `json:"subject"`
	Action       string        `json:"action"`
	Jurisdiction string        `json:"jurisdiction,omitempty"`
	ReportYear   int           `json:"report_year,omitempty"`
	Decision     string        `json:"decision,omitempty"`
	Reason       string        `json:"reason,omitempty"`
	RequestID    string        `json:"request_id,omitempty"`
}

// Store persists or forwards audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

type AuditEvent string

const (
	EventReportSubmitted AuditEvent = "compliance_report_submitted"
	EventReportAnalyzed  AuditEvent = "compliance_report_analyzed"
	EventReportViewed    AuditEvent = "compliance_report_viewed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventReportSubmitted: CategoryCompliance,
	EventReportAnalyzed:  CategoryCompliance,
	EventReportViewed:    CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
