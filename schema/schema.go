// Package schema has configs, models and shared constants for all parts of compscore.
package schema

// Expression is a boolean condition over candidate profile data.
// Var is a dotted path into the profile document (e.g. "work.policeRelatedYears").
// An Expression is plain data, never executable code; the interpreter for it
// lives in the core package.
type Expression struct {
	Var   string   `json:"var"`
	Op    Operator `json:"op"`
	Value any      `json:"value"`
}

// Rule is a single point-contributing condition within a category.
// A nil Expr means the rule is unconditionally eligible. Repeatable rules earn
// Points once per qualifying profile entry, bounded by Cap when set.
type Rule struct {
	ID         string      `json:"id"`
	Points     float64     `json:"points"`
	Repeatable bool        `json:"repeatable,omitempty"`
	Cap        *float64    `json:"cap,omitempty"`
	Expr       *Expression `json:"expr,omitempty"`
}

// Category is a weighted scoring dimension (e.g. work experience, education).
// Key is unique within a config; the category total never exceeds MaxPoints.
type Category struct {
	Key         string  `json:"key"`
	DisplayName string  `json:"displayName"`
	MaxPoints   float64 `json:"maxPoints"`
	Rules       []Rule  `json:"rules"`
}

// Threshold is a score-to-level breakpoint. Min is an inclusive lower bound
// expressed as a percentage. Thresholds are sorted ascending by Min and the
// lowest Min is 0.
type Threshold struct {
	Level string  `json:"level"`
	Min   float64 `json:"min"`
}

// Disqualifier is a hard-stop condition that forces the readiness level
// regardless of the computed percentage.
type Disqualifier struct {
	Expr        Expression `json:"expr"`
	ForcedLevel string     `json:"forcedLevel"`
}

// CompetitivenessConfig is a versioned, administrator-editable rule set.
// Once loaded for an evaluation it is treated as immutable.
type CompetitivenessConfig struct {
	Version       string         `json:"version"`
	Categories    []Category     `json:"categories"`
	Thresholds    []Threshold    `json:"thresholds"`
	Disqualifiers []Disqualifier `json:"disqualifiers,omitempty"`
}

// CategoryScore is the per-category portion of an evaluation result.
type CategoryScore struct {
	Key       string  `json:"key"`
	Points    float64 `json:"points"`
	MaxPoints float64 `json:"maxPoints"`
	Percent   float64 `json:"percent"`
}

// FiredDisqualifier records a disqualifier that matched the profile.
type FiredDisqualifier struct {
	Index       int    `json:"index"`
	Var         string `json:"var"`
	ForcedLevel string `json:"forcedLevel"`
}

// EvalWarning records a non-fatal problem encountered while evaluating an
// expression. Warnings never abort an evaluation; they exist for auditing.
type EvalWarning struct {
	Kind   WarningKind `json:"kind"`
	Var    string      `json:"var"`
	Detail string      `json:"detail"`
}

// EvaluationResult is the immutable output of one evaluation. The category
// breakdown always reflects the raw scores, even when a disqualifier forces
// the level, so administrators can see why a candidate would otherwise have
// scored higher.
type EvaluationResult struct {
	Version        string                   `json:"version"`
	CategoryScores map[string]CategoryScore `json:"categoryScores"`
	TotalScore     float64                  `json:"totalScore"`
	TotalMaxPoints float64                  `json:"totalMaxPoints"`
	TotalPercent   float64                  `json:"totalPercent"`
	Level          string                   `json:"level"`
	Disqualified   bool                     `json:"disqualified"`
	Disqualifiers  []FiredDisqualifier      `json:"disqualifiers,omitempty"`
	Warnings       []EvalWarning            `json:"warnings,omitempty"`
}

// CategoryKeys returns the category keys in config order.
func (c *CompetitivenessConfig) CategoryKeys() []string {
	keys := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		keys = append(keys, cat.Key)
	}
	return keys
}

// RuleCount returns the total number of rules across all categories.
func (c *CompetitivenessConfig) RuleCount() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Rules)
	}
	return n
}
