package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payequity/internal/compliance"
	"payequity/internal/report/models"
	"payequity/pkg/platform/sentinel"
)

func newReport(jurisdiction string, year int, submitted time.Time) *models.Report {
	jobs := []compliance.JobClass{
		{Title: "Engineer", Points: 300, Males: 5, MaxSalary: 6000},
		{Title: "Clerk", Points: 100, Females: 5, MaxSalary: 3000},
	}
	return &models.Report{
		ID:           uuid.New(),
		Jurisdiction: jurisdiction,
		ReportYear:   year,
		Jobs:         jobs,
		Verdict:      compliance.Analyze(jobs),
		Fingerprint:  "fp",
		SubmittedAt:  submitted,
		AnalyzedAt:   submitted,
	}
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

	t.Run("save and find", func(t *testing.T) {
		s := NewInMemory()
		report := newReport("Example County", 2025, base)
		require.NoError(t, s.Save(ctx, report))

		got, err := s.FindByID(ctx, report.ID)
		require.NoError(t, err)
		assert.Equal(t, report, got)
	})

	t.Run("returned reports are copies", func(t *testing.T) {
		s := NewInMemory()
		report := newReport("Example County", 2025, base)
		require.NoError(t, s.Save(ctx, report))
		report.Jobs[0].Title = "changed after save"

		got, err := s.FindByID(ctx, report.ID)
		require.NoError(t, err)
		assert.Equal(t, "Engineer", got.Jobs[0].Title)

		got.Jobs[0].Title = "changed after find"
		again, err := s.FindByID(ctx, report.ID)
		require.NoError(t, err)
		assert.Equal(t, "Engineer", again.Jobs[0].Title)
	})

	t.Run("duplicate id conflicts", func(t *testing.T) {
		s := NewInMemory()
		report := newReport("Example County", 2025, base)
		require.NoError(t, s.Save(ctx, report))
		assert.ErrorIs(t, s.Save(ctx, report), sentinel.ErrConflict)
	})

	t.Run("nil report", func(t *testing.T) {
		assert.ErrorIs(t, NewInMemory().Save(ctx, nil), sentinel.ErrInvalidInput)
	})

	t.Run("missing report", func(t *testing.T) {
		_, err := NewInMemory().FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("list orders newest year then newest submission", func(t *testing.T) {
		s := NewInMemory()
		older := newReport("Example County", 2024, base)
		first := newReport("Example County", 2025, base)
		resubmitted := newReport("Example County", 2025, base.Add(time.Hour))
		other := newReport("Other Town", 2025, base)
		for _, r := range []*models.Report{older, first, resubmitted, other} {
			require.NoError(t, s.Save(ctx, r))
		}

		got, err := s.ListByJurisdiction(ctx, "Example County")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, resubmitted.ID, got[0].ID)
		assert.Equal(t, first.ID, got[1].ID)
		assert.Equal(t, older.ID, got[2].ID)
	})

	t.Run("list unknown jurisdiction is empty", func(t *testing.T) {
		got, err := NewInMemory().ListByJurisdiction(ctx, "Nowhere")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
