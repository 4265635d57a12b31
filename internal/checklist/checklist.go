// Package checklist detects missing documents and matches pending-form
// trigger rules against the derived field set.
package checklist

import "github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"

// incomeProofTypes are the document types accepted as income proof.
var incomeProofTypes = []domain.DocumentType{
	domain.DocTypeSalarySlip,
	domain.DocTypeITR,
	domain.DocTypeBankStatement,
}

// MissingDocuments returns required document types absent from the
// detected set, preserving the configured list's order.
func MissingDocuments(required, detected []domain.DocumentType) []domain.DocumentType {
	present := make(map[domain.DocumentType]bool, len(detected))
	for _, t := range detected {
		present[t] = true
	}

	missing := make([]domain.DocumentType, 0, len(required))
	for _, t := range required {
		if !present[t] {
			missing = append(missing, t)
		}
	}
	return missing
}

// PendingForms evaluates the configured trigger rules against the field
// set and the missing-document list. Unrecognised trigger kinds are
// skipped, which keeps old deployments forward-compatible with rule
// tables that carry future kinds.
func PendingForms(rules []domain.PendingFormRule, fieldSet domain.FieldSet, missing []domain.DocumentType) []domain.PendingFormItem {
	missingSet := make(map[domain.DocumentType]bool, len(missing))
	for _, t := range missing {
		missingSet[t] = true
	}

	var pending []domain.PendingFormItem
	for _, rule := range rules {
		switch rule.Trigger {
		case domain.TriggerMissingIncomeProof:
			if anyMissing(missingSet, incomeProofTypes) {
				pending = append(pending, item(rule, "Income proof documents are incomplete"))
			}
		case domain.TriggerCreditScoreBelow700:
			if fieldSet.CreditScore < 700 {
				pending = append(pending, item(rule, "Credit score below preferred threshold"))
			}
		case domain.TriggerNameMatchBelow09:
			if fieldSet.NameMatchScore < 0.9 {
				pending = append(pending, item(rule, "Name mismatch risk in submitted documents"))
			}
		}
	}
	return pending
}

func anyMissing(missingSet map[domain.DocumentType]bool, types []domain.DocumentType) bool {
	for _, t := range types {
		if missingSet[t] {
			return true
		}
	}
	return false
}

func item(rule domain.PendingFormRule, reason string) domain.PendingFormItem {
	return domain.PendingFormItem{
		FormCode: rule.Code,
		FormName: rule.Name,
		Reason:   reason,
	}
}
