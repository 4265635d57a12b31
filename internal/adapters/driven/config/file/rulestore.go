// Package file provides a file-based implementation of the rule store
// port. Rule tables live in a single TOML or YAML file under the app
// config directory, written with defaults on first run and cached for
// the process lifetime. Edits take effect on the next start.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/ports/driven"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/logger"
)

// Ensure RuleStore implements the interface.
var _ driven.RuleStore = (*RuleStore)(nil)

// candidateFiles are probed in order; the first one found wins.
var candidateFiles = []string{"rules.toml", "rules.yaml", "rules.yml"}

// ruleFile is the on-disk layout of the rule tables.
type ruleFile struct {
	RequiredDocuments []domain.DocumentType      `toml:"required_documents" yaml:"required_documents"`
	PendingForms      []domain.PendingFormRule   `toml:"pending_forms" yaml:"pending_forms"`
	QueryCatalog      []domain.QueryCatalogEntry `toml:"query_catalog" yaml:"query_catalog"`
	EligibilityRules  []domain.EligibilityRule   `toml:"eligibility_rules" yaml:"eligibility_rules"`
}

// RuleStore loads rule tables from a TOML or YAML file.
type RuleStore struct {
	filePath string
	rules    ruleFile
}

// NewRuleStore creates a file-based rule store. If configDir is empty,
// defaults to ~/.financy. When no rules file exists yet, the built-in
// defaults are written to rules.toml so operators have a starting
// point to edit.
func NewRuleStore(configDir string) (*RuleStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".financy")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &RuleStore{}
	for _, name := range candidateFiles {
		path := filepath.Join(configDir, name)
		if _, err := os.Stat(path); err == nil {
			s.filePath = path
			break
		}
	}

	if s.filePath == "" {
		s.filePath = filepath.Join(configDir, candidateFiles[0])
		if err := s.writeDefaults(); err != nil {
			return nil, err
		}
		logger.Info("wrote default rule tables to %s", s.filePath)
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the rules file path.
func (s *RuleStore) Path() string {
	return s.filePath
}

// RequiredDocuments returns the configured required document types.
func (s *RuleStore) RequiredDocuments() []domain.DocumentType {
	return s.rules.RequiredDocuments
}

// PendingFormRules returns the configured pending-form trigger rules.
func (s *RuleStore) PendingFormRules() []domain.PendingFormRule {
	return s.rules.PendingForms
}

// QueryCatalog returns the historical query catalog.
func (s *RuleStore) QueryCatalog() []domain.QueryCatalogEntry {
	return s.rules.QueryCatalog
}

// EligibilityRules returns the configured eligibility rules.
func (s *RuleStore) EligibilityRules() []domain.EligibilityRule {
	return s.rules.EligibilityRules
}

// load reads and validates the rules file.
func (s *RuleStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("reading rules file: %w", err)
	}

	var rules ruleFile
	switch filepath.Ext(s.filePath) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rules); err != nil {
			return fmt.Errorf("%w: parsing %s: %v", domain.ErrConfigInvalid, s.filePath, err)
		}
	default:
		if err := toml.Unmarshal(data, &rules); err != nil {
			return fmt.Errorf("%w: parsing %s: %v", domain.ErrConfigInvalid, s.filePath, err)
		}
	}

	if err := validate(rules); err != nil {
		return err
	}

	s.rules = rules
	return nil
}

// validate fails loudly on rule tables the engines cannot evaluate.
// Unknown pending-form trigger kinds are allowed; the checklist engine
// skips them at run time.
func validate(rules ruleFile) error {
	for _, t := range rules.RequiredDocuments {
		if !t.IsValid() {
			return fmt.Errorf("%w: unknown document type %q in required_documents", domain.ErrConfigInvalid, t)
		}
	}
	for _, rule := range rules.EligibilityRules {
		if rule.ID == "" || rule.Metric == "" {
			return fmt.Errorf("%w: eligibility rule missing id or metric", domain.ErrConfigInvalid)
		}
		if !rule.Operator.IsValid() {
			return fmt.Errorf("%w: eligibility rule %s has unsupported operator %q", domain.ErrConfigInvalid, rule.ID, rule.Operator)
		}
		if _, ok := (domain.FieldSet{}).Metric(rule.Metric); !ok {
			return fmt.Errorf("%w: eligibility rule %s references unknown metric %q", domain.ErrConfigInvalid, rule.ID, rule.Metric)
		}
	}
	for _, form := range rules.PendingForms {
		if form.Code == "" || form.Trigger == "" {
			return fmt.Errorf("%w: pending form rule missing code or trigger_rule", domain.ErrConfigInvalid)
		}
	}
	for _, entry := range rules.QueryCatalog {
		if entry.BaseConfidence < 0 || entry.BaseConfidence > 1 {
			return fmt.Errorf("%w: query catalog entry %q has base_confidence outside [0,1]", domain.ErrConfigInvalid, entry.Query)
		}
	}
	return nil
}

// writeDefaults persists the built-in rule tables.
func (s *RuleStore) writeDefaults() error {
	data, err := toml.Marshal(defaultRules())
	if err != nil {
		return fmt.Errorf("marshalling default rules: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing default rules: %w", err)
	}
	return nil
}

// defaultRules are the tables used until an operator edits the file.
func defaultRules() ruleFile {
	return ruleFile{
		RequiredDocuments: []domain.DocumentType{
			domain.DocTypeSalarySlip,
			domain.DocTypeBankStatement,
			domain.DocTypePANCard,
			domain.DocTypeIDProof,
		},
		PendingForms: []domain.PendingFormRule{
			{
				ID:      "form-income-declaration",
				Code:    "FORM_16",
				Name:    "Income Proof Declaration",
				Trigger: domain.TriggerMissingIncomeProof,
			},
			{
				ID:      "form-credit-consent",
				Code:    "CIBIL_CONSENT",
				Name:    "Credit Bureau Consent Form",
				Trigger: domain.TriggerCreditScoreBelow700,
			},
			{
				ID:      "form-name-affidavit",
				Code:    "KYC_AFFIDAVIT",
				Name:    "Name Mismatch Affidavit",
				Trigger: domain.TriggerNameMatchBelow09,
			},
		},
		QueryCatalog: []domain.QueryCatalogEntry{
			{
				Query:          "Please share salary slips for the last three months",
				Tags:           []string{"salary_slip", "monthly_salary"},
				BaseConfidence: 0.55,
			},
			{
				Query:          "Please share bank statements covering the last six months",
				Tags:           []string{"bank_statement", "bank_statement_months"},
				BaseConfidence: 0.55,
			},
			{
				Query:          "Clarify recent repayment history affecting the credit score",
				Tags:           []string{"low_credit", "credit_score"},
				BaseConfidence: 0.6,
			},
			{
				Query:          "Provide closure letters for existing loan obligations",
				Tags:           []string{"high_emi", "emi"},
				BaseConfidence: 0.6,
			},
			{
				Query:          "Submit a copy of the PAN card for identity verification",
				Tags:           []string{"pan_card", "id_proof"},
				BaseConfidence: 0.5,
			},
		},
		EligibilityRules: []domain.EligibilityRule{
			{
				ID:       "rule-min-salary",
				Name:     "Minimum monthly salary",
				Metric:   "monthly_salary",
				Operator: domain.OpGTE,
				Value:    25000,
			},
			{
				ID:       "rule-credit-score",
				Name:     "Minimum credit score",
				Metric:   "credit_score",
				Operator: domain.OpGTE,
				Value:    650,
			},
			{
				ID:       "rule-emi-burden",
				Name:     "Maximum EMI to salary ratio",
				Metric:   "emi_ratio_percent",
				Operator: domain.OpLTE,
				Value:    50,
			},
			{
				ID:       "rule-statement-coverage",
				Name:     "Minimum bank statement coverage",
				Metric:   "bank_statement_months",
				Operator: domain.OpGTE,
				Value:    3,
			},
		},
	}
}
