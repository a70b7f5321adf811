package core

import (
	"math"

	"github.com/recruitready/compscore/schema"
)

// accumulateCategory folds every rule of a category over the profile and
// returns the clamped category score. The fold is order-independent: each
// rule's contribution depends only on the profile, and the category cap is
// applied to the sum, so permuting the rules slice never changes the total.
func accumulateCategory(cat schema.Category, profile schema.CandidateProfile) (schema.CategoryScore, []schema.EvalWarning) {
	var sum float64
	var warnings []schema.EvalWarning

	for _, rule := range cat.Rules {
		contribution, ruleWarnings := ruleContribution(rule, profile)
		sum += contribution
		warnings = append(warnings, ruleWarnings...)
	}

	points := clamp(sum, 0, cat.MaxPoints)
	percent := 0.0
	if cat.MaxPoints > 0 {
		percent = clamp(100*points/cat.MaxPoints, 0, 100)
	}

	return schema.CategoryScore{
		Key:       cat.Key,
		Points:    points,
		MaxPoints: cat.MaxPoints,
		Percent:   percent,
	}, warnings
}

// ruleContribution computes the points earned by one rule. A nil expression
// is unconditionally eligible. Repeatable rules earn points once per
// qualifying occurrence, bounded by the rule cap; a repeatable rule whose path
// is not a collection contributes at most once.
func ruleContribution(rule schema.Rule, profile schema.CandidateProfile) (float64, []schema.EvalWarning) {
	occurrences := 0
	var warnings []schema.EvalWarning

	if rule.Expr == nil {
		occurrences = 1
	} else {
		out := evalExpression(rule.Expr, profile)
		warnings = out.warnings
		if out.matched {
			occurrences = out.count
			if occurrences < 1 {
				occurrences = 1
			}
		}
	}

	if occurrences == 0 {
		return 0, warnings
	}
	if !rule.Repeatable {
		occurrences = 1
	}

	contribution := rule.Points * float64(occurrences)
	if rule.Cap != nil {
		contribution = math.Min(contribution, *rule.Cap)
	}
	return contribution, warnings
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
