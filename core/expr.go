// Package core implements the competitiveness scoring engine: a safe
// expression interpreter, per-category rule accumulation, disqualifier gating
// and threshold mapping, composed into one pure evaluation function.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/recruitready/compscore/schema"
	"github.com/tidwall/gjson"
)

// exprOutcome describes one expression evaluation. Count carries the number of
// qualifying occurrences when the resolved path is a collection; scalar
// matches report a count of 1 so repeatable rules can treat both uniformly.
type exprOutcome struct {
	matched  bool
	count    int
	warnings []schema.EvalWarning
}

// evalExpression interprets expr against the profile document. It is total:
// every input produces a boolean outcome, never a panic or error. Unresolvable
// paths and failed coercions evaluate to false and are surfaced as warnings.
func evalExpression(expr *schema.Expression, profile schema.CandidateProfile) exprOutcome {
	res := gjson.GetBytes(profile.Doc(), expr.Var)
	if !res.Exists() {
		return exprOutcome{warnings: []schema.EvalWarning{{
			Kind:   schema.WarnUnresolvedPath,
			Var:    expr.Var,
			Detail: "path does not resolve in profile",
		}}}
	}

	if res.IsArray() {
		return evalAgainstCollection(expr, res)
	}

	out := exprOutcome{}
	var matched bool
	var warn *schema.EvalWarning
	if expr.Op == schema.OpIncludes {
		matched, warn = evalIncludesScalar(expr, res)
	} else {
		matched, warn = compareScalar(res, expr.Op, expr.Value, expr.Var)
	}
	if warn != nil {
		out.warnings = append(out.warnings, *warn)
	}
	out.matched = matched
	if matched {
		out.count = 1
	}
	return out
}

// evalAgainstCollection counts the elements of an array value satisfying the
// expression. For `includes` an element qualifies when it equals or
// structurally matches the expression value; for comparison operators the
// element itself is compared.
func evalAgainstCollection(expr *schema.Expression, res gjson.Result) exprOutcome {
	out := exprOutcome{}
	for _, el := range res.Array() {
		var hit bool
		var warn *schema.EvalWarning
		if expr.Op == schema.OpIncludes {
			hit = elementMatches(el, expr.Value)
		} else {
			hit, warn = compareScalar(el, expr.Op, expr.Value, expr.Var)
		}
		if warn != nil {
			out.warnings = append(out.warnings, *warn)
		}
		if hit {
			out.count++
		}
	}
	out.matched = out.count > 0
	return out
}

// evalIncludesScalar handles `includes` on a non-array value: strings use
// substring containment, anything else falls back to loose equality.
func evalIncludesScalar(expr *schema.Expression, res gjson.Result) (bool, *schema.EvalWarning) {
	if res.Type == gjson.String {
		needle, ok := expr.Value.(string)
		if !ok {
			return false, &schema.EvalWarning{
				Kind:   schema.WarnCoercionFailure,
				Var:    expr.Var,
				Detail: "includes on a string requires a string value",
			}
		}
		return strings.Contains(res.String(), needle), nil
	}
	return looseEqual(res, expr.Value), nil
}

// elementMatches reports whether one collection element equals or structurally
// matches the expression value. Object elements match a scalar value when any
// of their top-level fields equals it, so `includes "cpr_c"` finds
// {"type": "cpr_c"} entries; a map value requires every listed field to match.
func elementMatches(el gjson.Result, value any) bool {
	if el.IsObject() {
		switch v := value.(type) {
		case map[string]any:
			all := true
			for k, want := range v {
				if !looseEqual(el.Get(k), want) {
					all = false
					break
				}
			}
			return all && len(v) > 0
		default:
			found := false
			el.ForEach(func(_, field gjson.Result) bool {
				if looseEqual(field, value) {
					found = true
					return false
				}
				return true
			})
			return found
		}
	}
	return looseEqual(el, value)
}

// compareScalar applies a comparison operator between a resolved profile value
// and the expression value. Numeric coercion is attempted first; when it fails
// equality operators fall back to same-type string/bool comparison and ordered
// operators fail closed with a warning.
func compareScalar(res gjson.Result, op schema.Operator, value any, path string) (bool, *schema.EvalWarning) {
	ln, lok := numericResult(res)
	rn, rok := numericValue(value)
	if lok && rok {
		return compareFloats(ln, rn, op), nil
	}

	if !op.OrderedComparison() {
		if eq, ok := sameTypeEqual(res, value); ok {
			if op == schema.OpNE {
				return !eq, nil
			}
			return eq, nil
		}
	}

	return false, &schema.EvalWarning{
		Kind:   schema.WarnCoercionFailure,
		Var:    path,
		Detail: fmt.Sprintf("cannot compare %s value with %q using %s", res.Type, fmt.Sprint(value), op),
	}
}

// compareFloats applies an ordered or equality operator to two numbers.
func compareFloats(l, r float64, op schema.Operator) bool {
	switch op {
	case schema.OpGTE:
		return l >= r
	case schema.OpGT:
		return l > r
	case schema.OpLT:
		return l < r
	case schema.OpLTE:
		return l <= r
	case schema.OpNE:
		return l != r
	default: // OpEQ and anything else equality-shaped
		return l == r
	}
}

// sameTypeEqual compares a profile value and an expression value when both are
// strings or both are booleans. The second return is false when the pair is
// not comparable without coercion.
func sameTypeEqual(res gjson.Result, value any) (eq bool, ok bool) {
	switch v := value.(type) {
	case string:
		if res.Type == gjson.String {
			return res.String() == v, true
		}
	case bool:
		if res.Type == gjson.True || res.Type == gjson.False {
			return res.Bool() == v, true
		}
	}
	return false, false
}

// looseEqual is the equality used by `includes`: numeric when both sides
// coerce to numbers, otherwise exact string/bool equality.
func looseEqual(res gjson.Result, value any) bool {
	if !res.Exists() {
		return false
	}
	ln, lok := numericResult(res)
	rn, rok := numericValue(value)
	if lok && rok {
		return ln == rn
	}
	if eq, ok := sameTypeEqual(res, value); ok {
		return eq
	}
	return false
}

// numericResult coerces a gjson value to a float64. Numeric strings coerce;
// booleans and composites do not.
func numericResult(res gjson.Result) (float64, bool) {
	switch res.Type {
	case gjson.Number:
		return res.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(res.Str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// numericValue coerces an expression value (decoded JSON) to a float64.
func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
