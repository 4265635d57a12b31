package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/adapters/driven/storage/memory"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/ports/driving"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/extraction"
)

type stubPDFText struct{ text string }

func (s *stubPDFText) ExtractText(_ context.Context, _ []byte) (string, error) {
	return s.text, nil
}

type stubRasterizer struct{}

func (s *stubRasterizer) Rasterize(_ context.Context, _ []byte) ([][]byte, error) {
	return nil, nil
}

type stubOCR struct {
	tokens []string
	confs  []float64
}

func (s *stubOCR) Recognize(_ context.Context, _ []byte) (*domain.OCRResult, error) {
	return &domain.OCRResult{Tokens: s.tokens, Confidences: s.confs}, nil
}

type stubRenderer struct{ pdf []byte }

func (s *stubRenderer) Render(_ context.Context, _ *domain.Report) ([]byte, error) {
	return s.pdf, nil
}

func testRuleStore() *memory.RuleStore {
	return memory.NewRuleStore(
		[]domain.DocumentType{
			domain.DocTypeSalarySlip,
			domain.DocTypeBankStatement,
			domain.DocTypePANCard,
			domain.DocTypeIDProof,
		},
		[]domain.PendingFormRule{
			{ID: "f1", Code: "FORM_16", Name: "Form 16", Trigger: domain.TriggerMissingIncomeProof},
			{ID: "f2", Code: "CREDIT_CONSENT", Name: "Credit Consent Form", Trigger: domain.TriggerCreditScoreBelow700},
		},
		[]domain.QueryCatalogEntry{
			{Query: "Please share latest salary slips", Tags: []string{"salary_slip"}, BaseConfidence: 0.5},
			{Query: "Clarify low credit score history", Tags: []string{"low_credit"}, BaseConfidence: 0.6},
		},
		[]domain.EligibilityRule{
			{ID: "r1", Name: "Minimum salary", Metric: "monthly_salary", Operator: domain.OpGTE, Value: 25000},
		},
	)
}

func newTestService(pdfText string) (*ReportService, *memory.ReportStore) {
	store := memory.NewReportStore()
	extractor := extraction.NewService(&stubPDFText{text: pdfText}, &stubRasterizer{}, &stubOCR{})
	svc := NewReportService(extractor, testRuleStore(), store, &stubRenderer{pdf: []byte("%PDF-fake")})
	return svc, store
}

func TestReportService_ProcessAndPersist(t *testing.T) {
	text := "Net Salary: Rs. 55,000 credited monthly to the account holder"
	svc, store := newTestService(text)
	ctx := context.Background()

	report, err := svc.Process(ctx, []domain.RawDocument{
		{Filename: "salary_slip.pdf", Content: []byte("pdf-bytes")},
	}, driving.UploadOptions{UserID: "u-1", Category: "personal_loan"})
	require.NoError(t, err)
	require.NotEmpty(t, report.ID)

	assert.True(t, report.Eligible)
	assert.Equal(t, 55000.0, report.Fields.MonthlySalary)
	assert.Equal(t, "u-1", report.Metadata.UserID)
	assert.Equal(t, 1, report.Metadata.Ingest.UploadedCount)
	require.Len(t, report.Metadata.Ingest.SHA256, 1)
	assert.Len(t, report.Metadata.Ingest.SHA256[0], 64)

	stored, err := store.Get(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Fields.MonthlySalary, stored.Fields.MonthlySalary)
}

func TestReportService_ProcessEmptyBatch(t *testing.T) {
	svc, _ := newTestService("")
	_, err := svc.Process(context.Background(), nil, driving.UploadOptions{})
	assert.ErrorIs(t, err, domain.ErrNoDocuments)
}

func TestReportService_MissingDocumentsAndForms(t *testing.T) {
	text := "Net Salary: Rs. 55,000 credited monthly to the account holder"
	svc, _ := newTestService(text)

	report, err := svc.Process(context.Background(), []domain.RawDocument{
		{Filename: "salary_slip.pdf", Content: []byte("x")},
	}, driving.UploadOptions{})
	require.NoError(t, err)

	// Only a salary slip was uploaded.
	assert.Equal(t, []domain.DocumentType{
		domain.DocTypeBankStatement,
		domain.DocTypePANCard,
		domain.DocTypeIDProof,
	}, report.MissingDocuments)

	// bank_statement is missing, so income proof is incomplete, and a
	// zero credit score triggers the consent form.
	require.Len(t, report.PendingForms, 2)
	assert.Equal(t, "FORM_16", report.PendingForms[0].FormCode)
	assert.Equal(t, "CREDIT_CONSENT", report.PendingForms[1].FormCode)
}

func TestReportService_PredictedQueriesBounded(t *testing.T) {
	svc, _ := newTestService("Net Salary: Rs. 55,000 credited monthly to the account holder")

	report, err := svc.Process(context.Background(), []domain.RawDocument{
		{Filename: "salary_slip.pdf", Content: []byte("x")},
	}, driving.UploadOptions{})
	require.NoError(t, err)

	assert.NotEmpty(t, report.PredictedQueries)
	assert.LessOrEqual(t, len(report.PredictedQueries), 3)
	for _, q := range report.PredictedQueries {
		assert.GreaterOrEqual(t, q.Confidence, 0.0)
		assert.LessOrEqual(t, q.Confidence, 0.99)
	}
}

func TestReportService_LowQualityRejected(t *testing.T) {
	// Embedded text below threshold forces OCR; the stubbed engine
	// returns low-confidence tokens on a single page.
	store := memory.NewReportStore()
	extractor := extraction.NewService(
		&stubPDFText{text: "short"},
		&pageRasterizer{},
		&stubOCR{tokens: []string{"blurry", "scan"}, confs: []float64{20, 30}},
	)
	svc := NewReportService(extractor, testRuleStore(), store, &stubRenderer{})

	_, err := svc.Process(context.Background(), []domain.RawDocument{
		{Filename: "scan.pdf", Content: []byte("x")},
	}, driving.UploadOptions{})
	assert.ErrorIs(t, err, domain.ErrLowQuality)
}

type pageRasterizer struct{}

func (p *pageRasterizer) Rasterize(_ context.Context, _ []byte) ([][]byte, error) {
	return [][]byte{[]byte("page")}, nil
}

func TestReportService_GetMissing(t *testing.T) {
	svc, _ := newTestService("")
	_, err := svc.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportService_RenderPDF(t *testing.T) {
	svc, store := newTestService("")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Report{ID: "r-1"}))
	pdf, err := svc.RenderPDF(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
}

func TestReportService_ConfidenceSummaryClamped(t *testing.T) {
	svc, _ := newTestService("Net Salary: Rs. 55,000 credited monthly to the account holder")

	report, err := svc.Process(context.Background(), []domain.RawDocument{
		{Filename: "salary_slip.pdf", Content: []byte("x")},
	}, driving.UploadOptions{})
	require.NoError(t, err)

	c := report.Confidence
	for _, v := range []float64{c.OCRAverageConfidence, c.NameMatchScore, c.MissingDocumentPenalty, c.OverallConfidence} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}
