package core

import (
	"github.com/recruitready/compscore/schema"
)

// evaluateDisqualifiers runs every hard-stop condition against the profile,
// independently of category scoring. Disqualifiers fail OPEN: an expression
// that cannot be resolved to a match is treated as non-disqualifying and
// reported as a warning, so an engine defect never silently blocks a
// candidate. A matched expression still fires even when parts of it warned,
// such as one element of a mixed-type array failing coercion; those warnings
// pass through with their original kinds.
func evaluateDisqualifiers(cfg *schema.CompetitivenessConfig, profile schema.CandidateProfile) ([]schema.FiredDisqualifier, []schema.EvalWarning) {
	var fired []schema.FiredDisqualifier
	var warnings []schema.EvalWarning

	for i, dq := range cfg.Disqualifiers {
		out := evalExpression(&dq.Expr, profile)
		if out.matched {
			warnings = append(warnings, out.warnings...)
			fired = append(fired, schema.FiredDisqualifier{
				Index:       i,
				Var:         dq.Expr.Var,
				ForcedLevel: dq.ForcedLevel,
			})
			continue
		}
		for _, w := range out.warnings {
			warnings = append(warnings, schema.EvalWarning{
				Kind:   schema.WarnDisqualifierSkipped,
				Var:    w.Var,
				Detail: w.Detail,
			})
		}
	}

	return fired, warnings
}

// mostSevereLevel picks the forced level among fired disqualifiers. Severity
// follows the threshold table: the level with the lowest Min is the most
// severe. A forced level missing from the table (the validator rejects these,
// but configs can predate a threshold rename) is treated as the most severe.
func mostSevereLevel(fired []schema.FiredDisqualifier, thresholds []schema.Threshold) string {
	mins := make(map[string]float64, len(thresholds))
	for _, t := range thresholds {
		mins[t.Level] = t.Min
	}

	level := ""
	best := 0.0
	for _, f := range fired {
		min, known := mins[f.ForcedLevel]
		if !known {
			return f.ForcedLevel
		}
		if level == "" || min < best {
			level = f.ForcedLevel
			best = min
		}
	}
	return level
}
