// Package months normalises dates and month names into canonical
// "YYYY-MM" keys and estimates how many bank-statement months a corpus
// covers.
package months

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// monthNames holds three-letter abbreviations; index+1 is the month number.
var monthNames = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// yearSentinel stands in for a missing year so month keys stay sortable.
const yearSentinel = "0000"

var (
	namedMonthPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(monthNames, "|") + `)[a-z]*[\s\-/,]*(20[0-9]{2})?\b`)

	// Numeric dates like 12/01/2026, 12-1-26, 2026/01/12.
	dmyPattern = regexp.MustCompile(`\b([0-3]?\d)[/\-]([0-1]?\d)[/\-]((?:20)?\d{2})\b`)
	ymdPattern = regexp.MustCompile(`\b((?:20)?\d{2})[/\-]([0-1]?\d)[/\-]([0-3]?\d)\b`)
)

// Number returns the 1-based month number for a month name, or 0 when
// the name is not recognised.
func Number(name string) int {
	short := strings.ToLower(strings.TrimSpace(name))
	if len(short) > 3 {
		short = short[:3]
	}
	for i, m := range monthNames {
		if m == short {
			return i + 1
		}
	}
	return 0
}

// Key builds the canonical "YYYY-MM" key.
func Key(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// FromNames extracts month keys from three-letter month names, with an
// optional 4-digit year. A missing year maps to the "0000" sentinel.
func FromNames(text string) map[string]bool {
	keys := make(map[string]bool)
	for _, m := range namedMonthPattern.FindAllStringSubmatch(text, -1) {
		num := Number(m[1])
		if num == 0 {
			continue
		}
		year := m[2]
		if year == "" {
			year = yearSentinel
		}
		keys[fmt.Sprintf("%s-%02d", year, num)] = true
	}
	return keys
}

// FromDates extracts month keys from D/M/Y and Y/M/D numeric dates.
// Two-digit years below 100 map to 2000+year. Months outside 1-12 are
// dropped rather than guessed at.
func FromDates(text string) map[string]bool {
	keys := make(map[string]bool)
	for _, m := range dmyPattern.FindAllStringSubmatch(text, -1) {
		addDateKey(keys, m[3], m[2])
	}
	for _, m := range ymdPattern.FindAllStringSubmatch(text, -1) {
		addDateKey(keys, m[1], m[2])
	}
	return keys
}

func addDateKey(keys map[string]bool, yearRaw, monthRaw string) {
	month, err := strconv.Atoi(monthRaw)
	if err != nil || month < 1 || month > 12 {
		return
	}
	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		return
	}
	if year < 100 {
		year += 2000
	}
	keys[Key(year, month)] = true
}
