package domain

// RawDocument represents opaque uploaded bytes before text extraction.
// It is owned by a single pipeline invocation and discarded afterwards.
type RawDocument struct {
	// Filename is the sanitised original file name.
	Filename string

	// Content is the raw bytes.
	Content []byte
}

// DocumentType labels a document by its financial role.
type DocumentType string

// Known document types, in classifier priority order.
const (
	DocTypePANCard       DocumentType = "pan_card"
	DocTypeBankStatement DocumentType = "bank_statement"
	DocTypeSalarySlip    DocumentType = "salary_slip"
	DocTypeIDProof       DocumentType = "id_proof"
	DocTypeITR           DocumentType = "itr"
	DocTypeOther         DocumentType = "other"
)

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocTypePANCard, DocTypeBankStatement, DocTypeSalarySlip,
		DocTypeIDProof, DocTypeITR, DocTypeOther:
		return true
	default:
		return false
	}
}

// Extraction is the per-document outcome of text acquisition.
//
// Invariants: OCRConfidence is 1.0 when OCRUsed is false and Text is
// non-empty, and 0.0 when no text was recoverable. A Degraded extraction
// is not an error; the pipeline treats it as an empty signal.
type Extraction struct {
	// Text is the recovered text, possibly empty.
	Text string

	// OCRUsed reports whether the OCR engine produced the text.
	OCRUsed bool

	// OCRConfidence is the mean token confidence in [0,1].
	OCRConfidence float64

	// Degraded is set when extraction failed and yielded no text.
	// It distinguishes "genuinely empty document" from "extraction failed".
	Degraded bool

	// Reason describes why extraction degraded, empty otherwise.
	Reason string
}

// OCRResult is the raw output of the OCR engine for one page image:
// whitespace-separated tokens with per-token confidences in [0,100].
type OCRResult struct {
	Tokens      []string
	Confidences []float64
}
