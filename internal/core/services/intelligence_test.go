package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
)

var analysisNow = time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

func textDoc(filename, text string) (domain.RawDocument, domain.Extraction) {
	return domain.RawDocument{Filename: filename, Content: []byte(text)},
		domain.Extraction{Text: text, OCRConfidence: 1.0}
}

func TestAnalyze_KeywordSalary(t *testing.T) {
	doc, ex := textDoc("payslip.pdf", "Net Salary: Rs. 55,000")
	analysis := Analyze([]domain.RawDocument{doc}, []domain.Extraction{ex}, analysisNow)

	assert.Equal(t, 55000.0, analysis.Fields.MonthlySalary)
	assert.Equal(t, 0.0, analysis.Fields.MonthlyObligations)
	assert.Equal(t, 0.0, analysis.Fields.EMIRatioPercent)
	assert.Equal(t, domain.SalarySourceKeyword, analysis.Fields.SalarySource)
	assert.Equal(t, 660000.0, analysis.Fields.AnnualIncome)
}

func TestAnalyze_StructuredTableOverridesKeyword(t *testing.T) {
	text := "Salary Slip\nNet Salary: Rs. 99,999\nJan 2026 | Acme Corp | INR 50,000\nFeb 2026 | Acme Corp | INR 52,000"
	doc, ex := textDoc("salary.pdf", text)
	analysis := Analyze([]domain.RawDocument{doc}, []domain.Extraction{ex}, analysisNow)

	require.Len(t, analysis.SalaryBreakdown, 2)
	assert.Equal(t, domain.SalarySourceStructuredTable, analysis.Fields.SalarySource)
	assert.Equal(t, 51000.0, analysis.Fields.AverageMonthlySalary)
	assert.Equal(t, 52000.0, analysis.Fields.LatestMonthlySalary)
	assert.Equal(t, 51000.0, analysis.Fields.MonthlySalary)
}

func TestAnalyze_EMIRatio(t *testing.T) {
	doc, ex := textDoc("docs.pdf", "net salary 50,000 and loan emi 20,000")
	analysis := Analyze([]domain.RawDocument{doc}, []domain.Extraction{ex}, analysisNow)

	assert.Equal(t, 50000.0, analysis.Fields.MonthlySalary)
	assert.Equal(t, 20000.0, analysis.Fields.MonthlyObligations)
	assert.Equal(t, 40.0, analysis.Fields.EMIRatioPercent)

	require.Len(t, analysis.Obligations, 1)
	assert.Equal(t, 20000.0, analysis.Obligations[0].MonthlyAmount)
}

func TestAnalyze_SynthesizedBreakdown(t *testing.T) {
	doc, ex := textDoc("payslip.pdf", "net salary 60,000")
	analysis := Analyze([]domain.RawDocument{doc}, []domain.Extraction{ex}, analysisNow)

	// Trailing three months before June 2026.
	require.Len(t, analysis.SalaryBreakdown, 3)
	assert.Equal(t, "2026-03", analysis.SalaryBreakdown[0].Month)
	assert.Equal(t, "2026-04", analysis.SalaryBreakdown[1].Month)
	assert.Equal(t, "2026-05", analysis.SalaryBreakdown[2].Month)
	for _, row := range analysis.SalaryBreakdown {
		assert.Equal(t, 60000.0, row.Amount)
	}
}

func TestAnalyze_SynthesizedBreakdownYearRollover(t *testing.T) {
	february := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	doc, ex := textDoc("payslip.pdf", "net salary 60,000")
	analysis := Analyze([]domain.RawDocument{doc}, []domain.Extraction{ex}, february)

	require.Len(t, analysis.SalaryBreakdown, 3)
	assert.Equal(t, "2025-11", analysis.SalaryBreakdown[0].Month)
	assert.Equal(t, "2025-12", analysis.SalaryBreakdown[1].Month)
	assert.Equal(t, "2026-01", analysis.SalaryBreakdown[2].Month)
}

func TestAnalyze_NoSalaryNoBreakdown(t *testing.T) {
	doc, ex := textDoc("random.pdf", "nothing financial here at all")
	analysis := Analyze([]domain.RawDocument{doc}, []domain.Extraction{ex}, analysisNow)

	assert.Empty(t, analysis.SalaryBreakdown)
	assert.Empty(t, analysis.Obligations)
	assert.Equal(t, 0.0, analysis.Fields.MonthlySalary)
}

func TestAnalyze_StatementMonthsClamped(t *testing.T) {
	doc, ex := textDoc("bank_statement.pdf", "account summary with no dates")
	analysis := Analyze([]domain.RawDocument{doc}, []domain.Extraction{ex}, analysisNow)

	assert.GreaterOrEqual(t, analysis.Fields.BankStatementMonths, 1)
	assert.LessOrEqual(t, analysis.Fields.BankStatementMonths, 12)
	assert.Equal(t, 1, analysis.Fields.BankStatementMonths)
}

func TestAnalyze_CreditScore(t *testing.T) {
	doc, ex := textDoc("report.pdf", "CIBIL score: 712")
	analysis := Analyze([]domain.RawDocument{doc}, []domain.Extraction{ex}, analysisNow)
	assert.Equal(t, 712, analysis.Fields.CreditScore)
}

func TestAnalyze_LowQualityFlag(t *testing.T) {
	doc := domain.RawDocument{Filename: "blurry.png"}
	ex := domain.Extraction{Text: "barely anything", OCRUsed: true, OCRConfidence: 0.3}
	analysis := Analyze([]domain.RawDocument{doc}, []domain.Extraction{ex}, analysisNow)

	assert.True(t, analysis.Processing.LowQuality)
	assert.True(t, analysis.Processing.OCRUsed)
}

func TestAnalyze_HighQualityOCRNotFlagged(t *testing.T) {
	doc := domain.RawDocument{Filename: "scan.png"}
	ex := domain.Extraction{Text: "net salary 40,000", OCRUsed: true, OCRConfidence: 0.85}
	analysis := Analyze([]domain.RawDocument{doc}, []domain.Extraction{ex}, analysisNow)

	assert.False(t, analysis.Processing.LowQuality)
	assert.Equal(t, 0.85, analysis.Processing.OCRConfidence)
}

func TestAnalyze_RowConfidenceFloored(t *testing.T) {
	text := "Salary Slip\nJan 2026 | Acme Corp | 50,000"
	doc, ex := textDoc("salary.pdf", text)
	analysis := Analyze([]domain.RawDocument{doc}, []domain.Extraction{ex}, analysisNow)

	require.Len(t, analysis.SalaryBreakdown, 1)
	// Table rows start at 0.92; the blended document confidence can only
	// lift them, never lower them.
	assert.GreaterOrEqual(t, analysis.SalaryBreakdown[0].Confidence, 0.92)
}

func TestAnalyze_ClassifiesEveryDocument(t *testing.T) {
	d1, e1 := textDoc("bank_statement.pdf", "some text")
	d2, e2 := textDoc("pan_card.jpg", "")
	analysis := Analyze([]domain.RawDocument{d1, d2}, []domain.Extraction{e1, e2}, analysisNow)

	assert.Equal(t, []domain.DocumentType{domain.DocTypeBankStatement, domain.DocTypePANCard}, analysis.DocumentTypes)
	assert.Equal(t, []string{"bank_statement.pdf", "pan_card.jpg"}, analysis.Fields.DocumentsUploaded)
}
