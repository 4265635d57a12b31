package services

import (
	"fmt"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
)

// EvaluateEligibility runs the configured threshold rules over the
// field set. Every rule produces a decision record; overall eligibility
// is the conjunction of all rules. A missing metric or unsupported
// operator fails that rule rather than aborting the evaluation.
func EvaluateEligibility(rules []domain.EligibilityRule, fieldSet domain.FieldSet) (bool, []domain.RuleDecision) {
	decisions := make([]domain.RuleDecision, 0, len(rules))
	allPassed := true

	for _, rule := range rules {
		value, known := fieldSet.Metric(rule.Metric)

		var passed bool
		var message string
		switch {
		case !known:
			message = fmt.Sprintf("Metric %s missing in extracted data", rule.Metric)
		case rule.Operator == domain.OpGTE:
			passed = value >= rule.Value
			message = comparisonMessage(rule.Metric, value, rule.Value, passed, ">=", "<")
		case rule.Operator == domain.OpLTE:
			passed = value <= rule.Value
			message = comparisonMessage(rule.Metric, value, rule.Value, passed, "<=", ">")
		case rule.Operator == domain.OpGT:
			passed = value > rule.Value
			message = comparisonMessage(rule.Metric, value, rule.Value, passed, ">", "<=")
		case rule.Operator == domain.OpLT:
			passed = value < rule.Value
			message = comparisonMessage(rule.Metric, value, rule.Value, passed, "<", ">=")
		case rule.Operator == domain.OpEQ:
			passed = value == rule.Value
			message = comparisonMessage(rule.Metric, value, rule.Value, passed, "==", "!=")
		default:
			message = fmt.Sprintf("Unsupported operator: %s", rule.Operator)
		}

		decisions = append(decisions, domain.RuleDecision{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Passed:   passed,
			Message:  message,
			Details: map[string]any{
				"metric":    rule.Metric,
				"operator":  string(rule.Operator),
				"threshold": rule.Value,
				"value":     value,
			},
		})
		allPassed = allPassed && passed
	}

	return allPassed, decisions
}

func comparisonMessage(metric string, value, threshold float64, passed bool, passOp, failOp string) string {
	op := failOp
	if passed {
		op = passOp
	}
	return fmt.Sprintf("%s=%v %s %v", metric, value, op, threshold)
}
