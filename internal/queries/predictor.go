// Package queries ranks historical reviewer queries by tag overlap with
// the gaps detected in an application.
package queries

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/confidence"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
)

const (
	// overlapWeight is the confidence bonus per shared tag.
	overlapWeight = 0.08

	// maxConfidence caps a scored entry.
	maxConfidence = 0.99

	// maxResults bounds the returned list.
	maxResults = 3

	// fallbackConfidence is used when no catalog entry overlaps; the
	// first entry is still suggested so the caller is never left empty.
	fallbackConfidence = 0.62

	// highEMIThreshold marks a stressed EMI-to-salary ratio, percent.
	highEMIThreshold = 40.0

	// lowCreditThreshold marks a weak credit score.
	lowCreditThreshold = 700
)

var tokenPattern = regexp.MustCompile(`[a-z_]+`)

// Tokens builds the gap token set: words from missing-document names
// and pending-form codes, plus synthetic high_emi and low_credit
// markers derived from the field set.
func Tokens(fieldSet domain.FieldSet, missing []domain.DocumentType, pending []domain.PendingFormItem) map[string]bool {
	tokens := make(map[string]bool)

	var missingNames []string
	for _, t := range missing {
		missingNames = append(missingNames, string(t))
	}
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(strings.Join(missingNames, " ")), -1) {
		tokens[tok] = true
	}

	var formCodes []string
	for _, form := range pending {
		formCodes = append(formCodes, form.FormCode)
	}
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(strings.Join(formCodes, " ")), -1) {
		tokens[tok] = true
	}

	if fieldSet.EMIRatioPercent > highEMIThreshold {
		tokens["high_emi"] = true
	}
	if fieldSet.CreditScore < lowCreditThreshold {
		tokens["low_credit"] = true
	}
	return tokens
}

// Predict scores each catalog entry by tag overlap with the gap tokens
// and returns the top entries, highest score first. Ties preserve
// catalog order. Entries with zero overlap are excluded; when nothing
// overlaps, the first catalog entry is returned at a fixed fallback
// confidence so the caller always has at least one suggestion.
func Predict(catalog []domain.QueryCatalogEntry, tokens map[string]bool) []domain.PredictedQuery {
	type scored struct {
		score float64
		entry domain.QueryCatalogEntry
	}

	var matches []scored
	for _, entry := range catalog {
		overlap := 0
		for _, tag := range entry.Tags {
			if tokens[tag] {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		score := entry.BaseConfidence + overlapWeight*float64(overlap)
		if score > maxConfidence {
			score = maxConfidence
		}
		matches = append(matches, scored{score: score, entry: entry})
	}

	if len(matches) == 0 {
		if len(catalog) == 0 {
			return nil
		}
		first := catalog[0]
		return []domain.PredictedQuery{{
			Query:      first.Query,
			Confidence: fallbackConfidence,
			Rationale:  rationale(first.Tags),
		}}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	out := make([]domain.PredictedQuery, 0, len(matches))
	for _, m := range matches {
		out = append(out, domain.PredictedQuery{
			Query:      m.entry.Query,
			Confidence: confidence.Round2(m.score),
			Rationale:  rationale(m.entry.Tags),
		})
	}
	return out
}

func rationale(tags []string) string {
	return "Matched tags: " + strings.Join(tags, ", ")
}
