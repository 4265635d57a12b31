package driven

import "github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"

// RuleStore provides the externally editable rule tables. Tables are
// loaded once, validated loudly at load time, and treated as read-only
// for the process lifetime.
type RuleStore interface {
	// RequiredDocuments returns the document checklist in configured order.
	RequiredDocuments() []domain.DocumentType

	// PendingFormRules returns the pending-form trigger table.
	PendingFormRules() []domain.PendingFormRule

	// QueryCatalog returns historical reviewer queries in catalog order.
	QueryCatalog() []domain.QueryCatalogEntry

	// EligibilityRules returns the threshold rules for the rule engine.
	EligibilityRules() []domain.EligibilityRule
}
