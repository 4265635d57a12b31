package memory

import (
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/ports/driven"
)

// Ensure RuleStore implements the interface.
var _ driven.RuleStore = (*RuleStore)(nil)

// RuleStore is a fixed in-memory implementation of driven.RuleStore.
// Tables are set at construction and read-only afterwards, matching the
// load-once contract of the file-backed store.
type RuleStore struct {
	required    []domain.DocumentType
	forms       []domain.PendingFormRule
	catalog     []domain.QueryCatalogEntry
	eligibility []domain.EligibilityRule
}

// NewRuleStore creates a rule store with the given tables.
func NewRuleStore(
	required []domain.DocumentType,
	forms []domain.PendingFormRule,
	catalog []domain.QueryCatalogEntry,
	eligibility []domain.EligibilityRule,
) *RuleStore {
	return &RuleStore{
		required:    required,
		forms:       forms,
		catalog:     catalog,
		eligibility: eligibility,
	}
}

// RequiredDocuments returns the document checklist in configured order.
func (s *RuleStore) RequiredDocuments() []domain.DocumentType {
	return s.required
}

// PendingFormRules returns the pending-form trigger table.
func (s *RuleStore) PendingFormRules() []domain.PendingFormRule {
	return s.forms
}

// QueryCatalog returns historical reviewer queries in catalog order.
func (s *RuleStore) QueryCatalog() []domain.QueryCatalogEntry {
	return s.catalog
}

// EligibilityRules returns the threshold rules for the rule engine.
func (s *RuleStore) EligibilityRules() []domain.EligibilityRule {
	return s.eligibility
}
