package driven

import (
	"context"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
)

// ReportStore persists consolidated reports keyed by report ID.
type ReportStore interface {
	// Save stores or replaces a report.
	Save(ctx context.Context, report *domain.Report) error

	// Get retrieves a report by ID.
	// Returns domain.ErrNotFound if no report exists.
	Get(ctx context.Context, id string) (*domain.Report, error)

	// Close releases underlying resources.
	Close() error
}

// ReportRenderer renders a report for download.
type ReportRenderer interface {
	// Render produces a PDF rendition of the report.
	Render(ctx context.Context, report *domain.Report) ([]byte, error)
}
