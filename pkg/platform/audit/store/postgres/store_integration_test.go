//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	audit "payequity/pkg/platform/audit"
	"payequity/pkg/platform/audit/store/postgres"
	"payequity/pkg/testutil/containers"
)

type AuditStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.Store
}

func TestAuditStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(AuditStoreSuite))
}

func (s *AuditStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = postgres.New(s.postgres.Pool)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *AuditStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "compliance_audit_events"))
}

func (s *AuditStoreSuite) TestAppendAndList() {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	analyzed := audit.Event{
		ID:           "evt-1",
		Timestamp:    base,
		Subject:      "report-1",
		Action:       string(audit.EventReportAnalyzed),
		Jurisdiction: "Example County",
		ReportYear:   2025,
		Decision:     "compliant",
		RequestID:    "req-1",
	}
	viewed := audit.Event{
		ID:        "evt-2",
		Timestamp: base.Add(time.Minute),
		Subject:   "report-1",
		Action:    string(audit.EventReportViewed),
	}
	s.Require().NoError(s.store.Append(ctx, viewed))
	s.Require().NoError(s.store.Append(ctx, analyzed))
	s.Require().NoError(s.store.Append(ctx, audit.Event{Timestamp: base, Subject: "report-2", Action: string(audit.EventReportViewed)}))

	events, err := s.store.ListBySubject(ctx, "report-1")
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal("evt-1", events[0].ID)
	s.Equal(audit.CategoryCompliance, events[0].Category)
	s.Equal("compliant", events[0].Decision)
	s.Equal(2025, events[0].ReportYear)
	s.True(base.Equal(events[0].Timestamp))
	s.Equal(audit.CategoryOperations, events[1].Category)
}

func (s *AuditStoreSuite) TestAppendIsIdempotent() {
	ctx := context.Background()
	event := audit.Event{ID: "evt-1", Timestamp: time.Now(), Subject: "report-1", Action: string(audit.EventReportAnalyzed)}

	s.Require().NoError(s.store.Append(ctx, event))
	s.Require().NoError(s.store.Append(ctx, event))

	events, err := s.store.ListBySubject(ctx, "report-1")
	s.Require().NoError(err)
	s.Len(events, 1)
}
