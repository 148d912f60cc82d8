package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"payequity/internal/report/models"
	"payequity/pkg/platform/sentinel"
)

// InMemoryStore keeps reports in a map. Reports are copied on the way in and
// out so callers never share memory with the store.
type InMemoryStore struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]*models.Report
}

// NewInMemory constructs an empty store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{reports: make(map[uuid.UUID]*models.Report)}
}

func (s *InMemoryStore) Save(_ context.Context, report *models.Report) error {
	if report == nil {
		return sentinel.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reports[report.ID]; exists {
		return sentinel.ErrConflict
	}
	s.reports[report.ID] = clone(report)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(report), nil
}

func (s *InMemoryStore) ListByJurisdiction(_ context.Context, jurisdiction string) ([]*models.Report, error) {
	s.mu.RLock()
	out := make([]*models.Report, 0)
	for _, report := range s.reports {
		if report.Jurisdiction == jurisdiction {
			out = append(out, clone(report))
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].ReportYear != out[j].ReportYear {
			return out[i].ReportYear > out[j].ReportYear
		}
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func clone(r *models.Report) *models.Report {
	c := *r
	c.Jobs = append(c.Jobs[:0:0], r.Jobs...)
	return &c
}
