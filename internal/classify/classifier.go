// Package classify labels uploaded documents by financial role from
// filename and content cues.
package classify

import (
	"regexp"
	"strings"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
)

// panPattern matches PAN numbers like ABCDE1234F.
var panPattern = regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)

// Classify returns the document type for a filename and its extracted
// text. Rule order is a documented contract: PAN cues win first because
// PAN numbers can appear inside any file type, then bank statement,
// salary slip, ID proof, ITR. First match wins.
func Classify(filename, extractedText string) domain.DocumentType {
	lower := strings.ToLower(filename)
	textLower := strings.ToLower(extractedText)

	if strings.Contains(lower, "pan") ||
		strings.Contains(lower, "permanent account number") ||
		strings.Contains(textLower, "pan") ||
		strings.Contains(textLower, "permanent account number") ||
		panPattern.MatchString(strings.ToUpper(extractedText)) {
		return domain.DocTypePANCard
	}

	switch {
	case strings.Contains(lower, "bank") || strings.Contains(lower, "statement"):
		return domain.DocTypeBankStatement
	case strings.Contains(lower, "salary") || strings.Contains(lower, "payslip"):
		return domain.DocTypeSalarySlip
	case strings.Contains(lower, "aadhaar") || strings.Contains(lower, "aadhar") || strings.Contains(lower, "id"):
		return domain.DocTypeIDProof
	case strings.Contains(lower, "itr"):
		return domain.DocTypeITR
	default:
		return domain.DocTypeOther
	}
}
