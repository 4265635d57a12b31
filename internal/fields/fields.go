// Package fields extracts scalar financial figures from the merged
// document corpus by keyword-proximity search.
package fields

import (
	"regexp"
	"strconv"
	"strings"
)

// Keyword lists in priority order. Order encodes specificity preference
// ("net salary" before generic "income") and is a documented contract:
// the first keyword found in the corpus wins.
var (
	SalaryKeywords = []string{
		"monthly salary", "net salary", "net pay", "salary credited",
		"take home", "gross salary", "income",
	}
	EMIKeywords = []string{
		"emi", "monthly installment", "loan emi", "total emi", "obligation",
	}
	OutstandingKeywords = []string{
		"outstanding", "principal outstanding", "loan outstanding", "total due",
	}
)

// amountWindow bounds how far after a keyword an amount may appear.
const amountWindow = 120

var creditScorePattern = regexp.MustCompile(`(?is)(?:credit|cibil)\s*score.{0,30}?([3-9][0-9]{2})`)

// AmountAfterKeywords scans keywords in order and, for the first one
// present, parses a currency-prefixed numeric token within the search
// window after it. Returns false when no keyword yields an amount,
// letting the caller apply a zero default.
func AmountAfterKeywords(text string, keywords []string) (float64, bool) {
	for _, keyword := range keywords {
		pattern := regexp.MustCompile(
			`(?is)` + regexp.QuoteMeta(keyword) +
				`.{0,` + strconv.Itoa(amountWindow) + `}?` +
				`((?:₹|rs\.?|inr)\s*)?([0-9][0-9,]*(?:\.\d+)?)`,
		)
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := ParseAmount(m[2])
		if err != nil {
			continue
		}
		return amount, true
	}
	return 0, false
}

// CreditScore finds a credit/CIBIL score: a 3-digit number in 300-999
// within a short window after the label. Returns false when absent.
func CreditScore(text string) (int, bool) {
	m := creditScorePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	score, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return score, true
}

// ParseAmount parses a numeric token, stripping thousands separators.
func ParseAmount(raw string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	return strconv.ParseFloat(cleaned, 64)
}
