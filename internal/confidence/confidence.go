// Package confidence blends OCR and field-coverage signals into the
// document-level confidence score and the report confidence summary.
// Every function here is pure; this keeps the blending formula easy to
// test across its whole input lattice.
package confidence

import (
	"math"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
)

// minOCRConfidence is the acceptance threshold for OCR-derived text.
const minOCRConfidence = 0.55

// BlendInput names the signals feeding the blended score.
type BlendInput struct {
	// ParsedFields counts nonzero fields among salary, EMI,
	// outstanding and credit score.
	ParsedFields int

	// OCRUsed reports whether any document in the batch used OCR.
	OCRUsed bool

	// OCRAverageConfidence is the batch mean OCR confidence in [0,1].
	OCRAverageConfidence float64

	// HasText reports whether the merged corpus is non-empty.
	HasText bool
}

// Blend combines parse coverage with the text-quality base signal.
// The result is monotonically non-decreasing in ParsedFields.
func Blend(in BlendInput) float64 {
	parseConf := math.Min(0.95, 0.5+0.1*float64(in.ParsedFields))

	textConf := 0.0
	if in.HasText {
		textConf = 0.92
	}
	baseConf := textConf
	if in.OCRUsed {
		baseConf = in.OCRAverageConfidence
	}
	return Round2((baseConf + parseConf) / 2)
}

// FloorRows lifts each salary row's confidence to at least the blended
// document confidence, so table-sourced rows never report below the
// document-level signal.
func FloorRows(rows []domain.SalaryRow, blended float64) {
	for i := range rows {
		if rows[i].Confidence < blended {
			rows[i].Confidence = blended
		}
	}
}

// LowQuality reports whether OCR-derived text is too unreliable to act
// on. Callers must reject the batch rather than emit a report.
func LowQuality(ocrUsed bool, ocrAverage float64) bool {
	return ocrUsed && ocrAverage < minOCRConfidence
}

// Summary builds the report confidence summary. The missing-document
// penalty caps at 0.2 and the overall score is clamped to [0,1].
func Summary(ocrConfidence, nameMatchScore float64, missingCount int) domain.ConfidenceSummary {
	penalty := math.Min(0.2, 0.04*float64(missingCount))
	overall := math.Max(0, math.Min(1, (ocrConfidence+nameMatchScore)/2-penalty))
	return domain.ConfidenceSummary{
		OCRAverageConfidence:   Round2(ocrConfidence),
		NameMatchScore:         Round2(nameMatchScore),
		MissingDocumentPenalty: Round2(penalty),
		OverallConfidence:      Round2(overall),
	}
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
