// Package memory provides in-memory driven-port implementations,
// used in tests and as a fallback when no data directory is available.
package memory

import (
	"context"
	"sync"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore is an in-memory implementation of driven.ReportStore.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]domain.Report
}

// NewReportStore creates a new in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{reports: make(map[string]domain.Report)}
}

// Save stores or replaces a report.
func (s *ReportStore) Save(_ context.Context, report *domain.Report) error {
	if report == nil || report.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = *report
	return nil
}

// Get retrieves a report by ID.
func (s *ReportStore) Get(_ context.Context, id string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &report, nil
}

// Close releases nothing for the in-memory store.
func (s *ReportStore) Close() error {
	return nil
}
