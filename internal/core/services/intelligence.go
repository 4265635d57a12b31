package services

import (
	"strings"
	"time"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/classify"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/confidence"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/fields"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/logger"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/months"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/salarytable"
)

// defaultNameMatchScore stands in until a real name matcher exists; it
// sits exactly at the pending-form threshold so the name rule stays
// quiet for now.
const defaultNameMatchScore = 0.9

// Analysis is the derived financial profile for one batch of documents.
type Analysis struct {
	Fields          domain.FieldSet
	SalaryBreakdown []domain.SalaryRow
	Obligations     []domain.ObligationRow
	Processing      domain.ProcessingInfo
	DocumentTypes   []domain.DocumentType
}

// Analyze derives typed financial fields from acquired document text.
// It is deterministic on its inputs: the same bytes always produce the
// same profile, so retrying without new input cannot change the outcome.
func Analyze(docs []domain.RawDocument, extractions []domain.Extraction, now time.Time) Analysis {
	docTypes := make([]domain.DocumentType, len(docs))
	filenames := make([]string, len(docs))
	var texts []string
	ocrUsed := false
	var confSum float64
	for i, doc := range docs {
		ex := extractions[i]
		docTypes[i] = classify.Classify(doc.Filename, ex.Text)
		filenames[i] = doc.Filename
		if strings.TrimSpace(ex.Text) != "" {
			texts = append(texts, ex.Text)
		}
		ocrUsed = ocrUsed || ex.OCRUsed
		confSum += ex.OCRConfidence
	}

	mergedRaw := strings.Join(texts, "\n")
	merged := strings.ToLower(mergedRaw)

	// The salary table parser overrides keyword extraction whenever it
	// yields rows.
	salarySource := domain.SalarySourceKeyword
	salaryRows := salarytable.Parse(mergedRaw)
	var salary float64
	if len(salaryRows) > 0 {
		salarytable.SortByMonth(salaryRows)
		salary = salarytable.Average(salaryRows)
		salarySource = domain.SalarySourceStructuredTable
		logger.Debug("structured salary table found: %d rows", len(salaryRows))
	} else {
		salary, _ = fields.AmountAfterKeywords(merged, fields.SalaryKeywords)
	}

	emi, _ := fields.AmountAfterKeywords(merged, fields.EMIKeywords)
	outstanding, _ := fields.AmountAfterKeywords(merged, fields.OutstandingKeywords)
	creditScore, _ := fields.CreditScore(merged)

	bankDocs := 0
	for _, t := range docTypes {
		if t == domain.DocTypeBankStatement {
			bankDocs++
		}
	}
	statementMonths := months.EstimateStatementMonths(merged, bankDocs)

	emiRatio := 0.0
	if salary > 0 {
		emiRatio = confidence.Round2(emi / salary * 100)
	}

	ocrAvg := 0.0
	if len(docs) > 0 {
		ocrAvg = confidence.Round2(confSum / float64(len(docs)))
	}
	parsedFields := countNonzero(salary, emi, outstanding, float64(creditScore))
	finalConf := confidence.Blend(confidence.BlendInput{
		ParsedFields:         parsedFields,
		OCRUsed:              ocrUsed,
		OCRAverageConfidence: ocrAvg,
		HasText:              strings.TrimSpace(merged) != "",
	})

	breakdown := salaryRows
	if len(breakdown) > 0 {
		confidence.FloorRows(breakdown, finalConf)
	} else if salary > 0 {
		breakdown = synthesizeBreakdown(salary, finalConf, now)
	}

	latest, average := 0.0, 0.0
	if len(breakdown) > 0 {
		salarytable.SortByMonth(breakdown)
		latest = breakdown[len(breakdown)-1].Amount
		average = salarytable.Average(breakdown)
	}

	var obligations []domain.ObligationRow
	if emi > 0 || outstanding > 0 {
		obligations = []domain.ObligationRow{{
			Lender:            "Extracted Lender",
			ObligationType:    "Loan EMI",
			MonthlyAmount:     confidence.Round2(emi),
			OutstandingAmount: confidence.Round2(outstanding),
		}}
	}

	return Analysis{
		Fields: domain.FieldSet{
			MonthlySalary:        confidence.Round2(salary),
			LatestMonthlySalary:  latest,
			AverageMonthlySalary: average,
			MonthlyObligations:   confidence.Round2(emi),
			OutstandingAmount:    confidence.Round2(outstanding),
			AnnualIncome:         confidence.Round2(salary * 12),
			EMIRatioPercent:      emiRatio,
			CreditScore:          creditScore,
			BankStatementMonths:  statementMonths,
			DocumentsUploaded:    filenames,
			DocumentTypes:        docTypes,
			OCRAverageConfidence: finalConf,
			NameMatchScore:       defaultNameMatchScore,
			SalarySource:         salarySource,
		},
		SalaryBreakdown: breakdown,
		Obligations:     obligations,
		Processing: domain.ProcessingInfo{
			OCRUsed:       ocrUsed,
			OCRConfidence: ocrAvg,
			TextLength:    len(strings.TrimSpace(merged)),
			LowQuality:    confidence.LowQuality(ocrUsed, ocrAvg),
		},
		DocumentTypes: docTypes,
	}
}

// countNonzero counts parsed fields; a field that is legitimately zero
// and one that failed to extract are indistinguishable here, matching
// the blending formula's inputs.
func countNonzero(values ...float64) int {
	n := 0
	for _, v := range values {
		if v > 0 {
			n++
		}
	}
	return n
}

// synthesizeBreakdown fabricates the trailing three calendar months at
// the keyword-extracted amount when no structured table was found.
func synthesizeBreakdown(salary, conf float64, now time.Time) []domain.SalaryRow {
	rows := make([]domain.SalaryRow, 0, 3)
	for i := 3; i >= 1; i-- {
		month := ((int(now.Month())-i-1)%12+12)%12 + 1
		year := now.Year()
		if int(now.Month()) <= i {
			year--
		}
		rows = append(rows, domain.SalaryRow{
			Month:      months.Key(year, month),
			Employer:   "Extracted Employer",
			Amount:     confidence.Round2(salary),
			Confidence: conf,
		})
	}
	return rows
}
