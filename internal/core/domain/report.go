package domain

import "time"

// SalarySource identifies how the monthly salary figure was derived.
type SalarySource string

const (
	// SalarySourceKeyword means keyword-proximity extraction produced the figure.
	SalarySourceKeyword SalarySource = "keyword"

	// SalarySourceStructuredTable means a parsed salary table overrode
	// keyword extraction.
	SalarySourceStructuredTable SalarySource = "structured_table"
)

// FieldSet holds the scalar financial metrics derived once per pipeline
// run. It is never mutated after assembly.
type FieldSet struct {
	MonthlySalary        float64        `json:"monthly_salary"`
	LatestMonthlySalary  float64        `json:"latest_monthly_salary"`
	AverageMonthlySalary float64        `json:"average_monthly_salary"`
	MonthlyObligations   float64        `json:"monthly_obligations"`
	OutstandingAmount    float64        `json:"outstanding_amount"`
	AnnualIncome         float64        `json:"annual_income"`
	EMIRatioPercent      float64        `json:"emi_ratio_percent"`
	CreditScore          int            `json:"credit_score"`
	BankStatementMonths  int            `json:"bank_statement_months"`
	DocumentsUploaded    []string       `json:"documents_uploaded"`
	DocumentTypes        []DocumentType `json:"document_types_detected"`
	OCRAverageConfidence float64        `json:"ocr_average_confidence"`
	NameMatchScore       float64        `json:"name_match_score"`
	SalarySource         SalarySource   `json:"salary_extraction_source"`
}

// Metric resolves a field by its configured rule-engine name.
// The second return is false for unknown metric names.
func (f FieldSet) Metric(name string) (float64, bool) {
	switch name {
	case "monthly_salary":
		return f.MonthlySalary, true
	case "latest_monthly_salary":
		return f.LatestMonthlySalary, true
	case "average_monthly_salary":
		return f.AverageMonthlySalary, true
	case "monthly_obligations":
		return f.MonthlyObligations, true
	case "outstanding_amount":
		return f.OutstandingAmount, true
	case "annual_income":
		return f.AnnualIncome, true
	case "emi_ratio_percent":
		return f.EMIRatioPercent, true
	case "credit_score":
		return float64(f.CreditScore), true
	case "bank_statement_months":
		return float64(f.BankStatementMonths), true
	case "ocr_average_confidence":
		return f.OCRAverageConfidence, true
	case "name_match_score":
		return f.NameMatchScore, true
	default:
		return 0, false
	}
}

// SalaryRow is one month of salary evidence.
// At most one row exists per (month, employer) pair.
type SalaryRow struct {
	// Month is the canonical "YYYY-MM" key used for dedup and sorting.
	Month string `json:"month"`

	// Employer is the paying entity as it appeared in the table.
	Employer string `json:"employer"`

	// Amount is the credited amount, non-negative.
	Amount float64 `json:"amount"`

	// Confidence is in [0,1].
	Confidence float64 `json:"confidence"`
}

// ObligationRow is a synthesized monthly obligation. Text alone cannot
// attribute obligations per lender, so at most one row exists per run.
type ObligationRow struct {
	Lender            string  `json:"lender"`
	ObligationType    string  `json:"obligation_type"`
	MonthlyAmount     float64 `json:"monthly_amount"`
	OutstandingAmount float64 `json:"outstanding_amount"`
}

// PendingFormItem is a form the applicant still needs to submit.
type PendingFormItem struct {
	FormCode string `json:"form_code"`
	FormName string `json:"form_name"`
	Reason   string `json:"reason"`
}

// PredictedQuery is a ranked reviewer query suggestion.
type PredictedQuery struct {
	Query      string  `json:"query"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// ConfidenceSummary blends document and identity signals into one
// overall score. All values are clamped to [0,1].
type ConfidenceSummary struct {
	OCRAverageConfidence   float64 `json:"ocr_average_confidence"`
	NameMatchScore         float64 `json:"name_match_score"`
	MissingDocumentPenalty float64 `json:"missing_document_penalty"`
	OverallConfidence      float64 `json:"overall_confidence"`
}

// RuleDecision records a single eligibility rule evaluation.
type RuleDecision struct {
	RuleID   string         `json:"rule_id"`
	RuleName string         `json:"rule_name"`
	Passed   bool           `json:"passed"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
}

// ProcessingInfo summarises how text acquisition went for the batch.
type ProcessingInfo struct {
	OCRUsed bool `json:"ocr_used"`

	// OCRConfidence is the mean per-document confidence in [0,1].
	OCRConfidence float64 `json:"ocr_confidence"`

	// TextLength is the trimmed length of the merged corpus.
	TextLength int `json:"text_length"`

	// LowQuality is set when OCR was used and its average confidence
	// fell below the acceptance threshold.
	LowQuality bool `json:"low_quality"`
}

// IngestInfo records what was uploaded, for audit.
type IngestInfo struct {
	UploadedFiles  []string `json:"uploaded_files"`
	UploadedCount  int      `json:"uploaded_count"`
	TotalSizeBytes int      `json:"total_size_bytes"`
	SHA256         []string `json:"sha256"`
}

// ReportMetadata carries caller-supplied context plus ingest and
// processing records.
type ReportMetadata struct {
	UserID     string         `json:"user_id,omitempty"`
	Category   string         `json:"category,omitempty"`
	Ingest     IngestInfo     `json:"ingest"`
	Processing ProcessingInfo `json:"processing"`
}

// Report is the consolidated eligibility report persisted by the
// report store, keyed by ID.
type Report struct {
	ID               string            `json:"report_id"`
	CreatedAt        time.Time         `json:"created_at"`
	Eligible         bool              `json:"eligibility"`
	Decisions        []RuleDecision    `json:"decisions"`
	Fields           FieldSet          `json:"extracted_data"`
	SalaryBreakdown  []SalaryRow       `json:"salary_breakdown"`
	Obligations      []ObligationRow   `json:"obligations"`
	MissingDocuments []DocumentType    `json:"missing_documents"`
	PendingForms     []PendingFormItem `json:"pending_forms"`
	PredictedQueries []PredictedQuery  `json:"predicted_queries"`
	Confidence       ConfidenceSummary `json:"confidence_summary"`
	Metadata         ReportMetadata    `json:"metadata"`
}
