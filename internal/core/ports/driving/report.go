package driving

import (
	"context"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
)

// UploadOptions carries optional caller context for an upload.
type UploadOptions struct {
	UserID   string
	Category string
}

// ReportService runs the document intelligence pipeline and manages
// the resulting reports.
type ReportService interface {
	// Process ingests a batch of documents, derives the financial
	// profile, evaluates eligibility, and persists the report.
	// Returns domain.ErrLowQuality when OCR-derived text is too
	// unreliable to report on.
	Process(ctx context.Context, docs []domain.RawDocument, opts UploadOptions) (*domain.Report, error)

	// Get retrieves a stored report by ID.
	Get(ctx context.Context, id string) (*domain.Report, error)

	// RenderPDF renders a stored report as a PDF document.
	RenderPDF(ctx context.Context, id string) ([]byte, error)
}
