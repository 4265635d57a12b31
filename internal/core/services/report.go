package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/checklist"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/confidence"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/ports/driven"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/ports/driving"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/extraction"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/logger"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/queries"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService runs the document intelligence pipeline end to end and
// manages persisted reports.
type ReportService struct {
	extractor *extraction.Service
	rules     driven.RuleStore
	store     driven.ReportStore
	renderer  driven.ReportRenderer
	now       func() time.Time
}

// NewReportService creates a report service.
func NewReportService(
	extractor *extraction.Service,
	rules driven.RuleStore,
	store driven.ReportStore,
	renderer driven.ReportRenderer,
) *ReportService {
	return &ReportService{
		extractor: extractor,
		rules:     rules,
		store:     store,
		renderer:  renderer,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Process ingests a batch of documents, derives the financial profile,
// evaluates eligibility, and persists the consolidated report.
func (s *ReportService) Process(ctx context.Context, docs []domain.RawDocument, opts driving.UploadOptions) (*domain.Report, error) {
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}

	logger.Section("Document Intelligence")
	now := s.now()

	extractions := s.extractor.AcquireAll(ctx, docs)
	analysis := Analyze(docs, extractions, now)

	if analysis.Processing.LowQuality {
		logger.Warn("rejecting batch: OCR confidence %.2f below threshold", analysis.Processing.OCRConfidence)
		return nil, domain.ErrLowQuality
	}

	missing := checklist.MissingDocuments(s.rules.RequiredDocuments(), analysis.DocumentTypes)
	pending := checklist.PendingForms(s.rules.PendingFormRules(), analysis.Fields, missing)
	predicted := queries.Predict(s.rules.QueryCatalog(), queries.Tokens(analysis.Fields, missing, pending))
	summary := confidence.Summary(analysis.Fields.OCRAverageConfidence, analysis.Fields.NameMatchScore, len(missing))

	eligible, decisions := EvaluateEligibility(s.rules.EligibilityRules(), analysis.Fields)
	logger.Info("evaluated %d rules, eligible=%t", len(decisions), eligible)

	report := &domain.Report{
		ID:               uuid.New().String(),
		CreatedAt:        now,
		Eligible:         eligible,
		Decisions:        decisions,
		Fields:           analysis.Fields,
		SalaryBreakdown:  analysis.SalaryBreakdown,
		Obligations:      analysis.Obligations,
		MissingDocuments: missing,
		PendingForms:     pending,
		PredictedQueries: predicted,
		Confidence:       summary,
		Metadata: domain.ReportMetadata{
			UserID:     opts.UserID,
			Category:   opts.Category,
			Ingest:     ingestInfo(docs),
			Processing: analysis.Processing,
		},
	}

	if err := s.store.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}
	return report, nil
}

// Get retrieves a stored report by ID.
func (s *ReportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	return s.store.Get(ctx, id)
}

// RenderPDF renders a stored report as a PDF document.
func (s *ReportService) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	report, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(ctx, report)
}

func ingestInfo(docs []domain.RawDocument) domain.IngestInfo {
	info := domain.IngestInfo{UploadedCount: len(docs)}
	for _, doc := range docs {
		sum := sha256.Sum256(doc.Content)
		info.UploadedFiles = append(info.UploadedFiles, doc.Filename)
		info.SHA256 = append(info.SHA256, hex.EncodeToString(sum[:]))
		info.TotalSizeBytes += len(doc.Content)
	}
	return info
}
