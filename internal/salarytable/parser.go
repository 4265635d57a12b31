// Package salarytable detects and parses structured salary tables.
// When a table yields rows, it overrides keyword-based salary
// extraction entirely.
package salarytable

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/fields"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/months"
)

// tableLabels gate the parser: without one of these in the corpus no
// table parsing is attempted.
var tableLabels = []string{"salary slip", "salary summary", "salary statement"}

// rowConfidence is the base confidence for a table-sourced row. The
// blended document confidence may floor it higher later.
const rowConfidence = 0.92

const monthAlt = `jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`

var (
	// Delimiter-separated rows: Jan 2026 | Acme Corp | INR 55,000
	delimPattern = regexp.MustCompile(
		`(?i)\b(` + monthAlt + `)[a-z]*\s*(20\d{2})?\s*[\|,;\t]\s*([^|,;\t]{2,80})\s*[\|,;\t]\s*((?:₹|rs\.?|inr)?\s*[0-9][0-9,]*(?:\.\d+)?)`)

	// Whitespace-separated rows: Jan 2026 Acme Corp INR 55,000
	spacePattern = regexp.MustCompile(
		`(?i)\b(` + monthAlt + `)[a-z]*\s*(20\d{2})?\s+([A-Za-z][A-Za-z0-9&.,'()\- ]{2,80}?)\s+((?:₹|rs\.?|inr)?\s*[0-9][0-9,]*(?:\.\d+)?)\b`)

	currencyToken = regexp.MustCompile(`(?i)(₹|rs\.?|inr)`)
)

// HasLabel reports whether the corpus carries a salary-table label.
func HasLabel(text string) bool {
	lowered := strings.ToLower(text)
	for _, label := range tableLabels {
		if strings.Contains(lowered, label) {
			return true
		}
	}
	return false
}

// Parse extracts salary rows from a labeled corpus. Each line is tried
// against the delimiter pattern first, then the whitespace pattern.
// Rows are deduplicated by (month, employer), keeping the last parsed
// occurrence. Returns nil when no label is present or no row parses.
func Parse(raw string) []domain.SalaryRow {
	if !HasLabel(raw) {
		return nil
	}

	type rowKey struct{ month, employer string }
	byKey := make(map[rowKey]domain.SalaryRow)
	var order []rowKey

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := delimPattern.FindStringSubmatch(line)
		if m == nil {
			m = spacePattern.FindStringSubmatch(line)
		}
		if m == nil {
			continue
		}

		monthNum := months.Number(m[1])
		if monthNum == 0 {
			continue
		}
		year := time.Now().UTC().Year()
		if m[2] != "" {
			year, _ = strconv.Atoi(m[2])
		}
		employer := strings.Trim(m[3], " :-|")
		if employer == "" {
			employer = "Extracted Employer"
		}
		amount, err := fields.ParseAmount(strings.TrimSpace(currencyToken.ReplaceAllString(m[4], "")))
		if err != nil {
			continue
		}

		row := domain.SalaryRow{
			Month:      months.Key(year, monthNum),
			Employer:   employer,
			Amount:     round2(amount),
			Confidence: rowConfidence,
		}
		key := rowKey{row.Month, row.Employer}
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = row
	}

	if len(order) == 0 {
		return nil
	}
	rows := make([]domain.SalaryRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, byKey[key])
	}
	return rows
}

// SortByMonth orders rows chronologically by month key, in place.
// Month keys sort lexically, so this is stable and deterministic.
func SortByMonth(rows []domain.SalaryRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Month < rows[j].Month
	})
}

// Average returns the mean row amount rounded to 2 decimals.
func Average(rows []domain.SalaryRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rows {
		sum += r.Amount
	}
	return round2(sum / float64(len(rows)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
