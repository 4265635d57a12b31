package domain

// TriggerRule identifies a pending-form trigger condition.
type TriggerRule string

// Supported trigger rules. Rule tables may carry future kinds; the
// checklist engine skips unrecognised ones rather than failing a run.
const (
	TriggerMissingIncomeProof  TriggerRule = "if_missing_income_proof"
	TriggerCreditScoreBelow700 TriggerRule = "if_credit_score_below_700"
	TriggerNameMatchBelow09    TriggerRule = "if_name_match_below_0_9"
)

// IsValid returns true if the trigger rule is recognised.
func (r TriggerRule) IsValid() bool {
	switch r {
	case TriggerMissingIncomeProof, TriggerCreditScoreBelow700, TriggerNameMatchBelow09:
		return true
	default:
		return false
	}
}

// PendingFormRule is one configured entry of the pending-form table.
type PendingFormRule struct {
	ID      string      `json:"id" toml:"id" yaml:"id"`
	Code    string      `json:"code" toml:"code" yaml:"code"`
	Name    string      `json:"name" toml:"name" yaml:"name"`
	Trigger TriggerRule `json:"trigger_rule" toml:"trigger_rule" yaml:"trigger_rule"`
}

// QueryCatalogEntry is one historical reviewer query with the tags
// used for overlap scoring.
type QueryCatalogEntry struct {
	Query          string   `json:"query" toml:"query" yaml:"query"`
	Tags           []string `json:"tags" toml:"tags" yaml:"tags"`
	BaseConfidence float64  `json:"base_confidence" toml:"base_confidence" yaml:"base_confidence"`
}

// Operator is a comparison operator in an eligibility rule.
type Operator string

// Supported eligibility operators.
const (
	OpGTE Operator = ">="
	OpLTE Operator = "<="
	OpGT  Operator = ">"
	OpLT  Operator = "<"
	OpEQ  Operator = "=="
)

// IsValid returns true if the operator is recognised.
func (o Operator) IsValid() bool {
	switch o {
	case OpGTE, OpLTE, OpGT, OpLT, OpEQ:
		return true
	default:
		return false
	}
}

// EligibilityRule compares one field-set metric against a threshold.
type EligibilityRule struct {
	ID       string   `json:"id" toml:"id" yaml:"id"`
	Name     string   `json:"name" toml:"name" yaml:"name"`
	Metric   string   `json:"metric" toml:"metric" yaml:"metric"`
	Operator Operator `json:"operator" toml:"operator" yaml:"operator"`
	Value    float64  `json:"value" toml:"value" yaml:"value"`
}
