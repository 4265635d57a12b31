package months

import (
	"regexp"
	"strings"
)

// summaryWindow bounds how much text after the summary label is trusted.
const summaryWindow = 2500

// summaryThreshold is the minimum distinct months a summary section must
// yield before it is trusted, to avoid false positives from a single
// date mention.
const summaryThreshold = 3

var (
	amountLikePattern = regexp.MustCompile(`(?i)(?:₹|rs\.?|inr)?\s*[0-9][0-9,]*(?:\.\d{1,2})?`)
	summaryPattern    = regexp.MustCompile(`(?i)bank\s*statement\s*summary`)
)

// TransactionMonths collects month keys from lines that also carry an
// amount-like token. Per line the date extractor is consulted first;
// named months only when no date matched. Transaction-line evidence is
// the least forgeable signal of statement coverage.
func TransactionMonths(text string) map[string]bool {
	found := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !amountLikePattern.MatchString(line) {
			continue
		}
		keys := FromDates(line)
		if len(keys) == 0 {
			keys = FromNames(line)
		}
		for k := range keys {
			found[k] = true
		}
	}
	return found
}

// SummaryMonths extracts month keys from the section following a
// "bank statement summary" label, bounded to the summary window.
func SummaryMonths(text string) map[string]bool {
	loc := summaryPattern.FindStringIndex(text)
	if loc == nil {
		return map[string]bool{}
	}
	section := text[loc[1]:]
	if len(section) > summaryWindow {
		section = section[:summaryWindow]
	}
	keys := FromDates(section)
	for k := range FromNames(section) {
		keys[k] = true
	}
	return keys
}

// EstimateStatementMonths counts distinct statement months, in order of
// trust: transaction evidence, then a summary section when it yields at
// least three distinct months, then the count of documents classified
// as bank statements. The result is always in [1,12].
func EstimateStatementMonths(text string, bankDocCount int) int {
	if tx := TransactionMonths(text); len(tx) > 0 {
		return clampMonths(len(tx))
	}
	if summary := SummaryMonths(text); len(summary) >= summaryThreshold {
		return clampMonths(len(summary))
	}
	return clampMonths(bankDocCount)
}

func clampMonths(n int) int {
	if n < 1 {
		return 1
	}
	if n > 12 {
		return 12
	}
	return n
}
