package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/recruitready/compscore/schema"
)

// DefaultMaxRules bounds the total rule count a config may carry. Config
// content is administrator-supplied and not otherwise size-limited, so the
// ceiling keeps worst-case evaluation latency bounded.
const DefaultMaxRules = 500

// Violation is one validation failure with enough detail for an administrator
// to fix the document before publishing.
type Violation struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Reason)
}

// ConfigError reports every violation found in a config document, not just
// the first. A caller holding a last known-good config must keep serving it
// when publish fails with a ConfigError.
type ConfigError struct {
	Violations []Violation
}

func (e *ConfigError) Error() string {
	reasons := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		reasons[i] = v.String()
	}
	return fmt.Sprintf("invalid config (%d violation(s)): %s", len(e.Violations), strings.Join(reasons, "; "))
}

// ValidationReport collects fatal violations and non-fatal lints from one
// validation pass.
type ValidationReport struct {
	Violations []Violation
	Lints      []Violation
}

// OK reports whether the config can be published.
func (r *ValidationReport) OK() bool {
	return len(r.Violations) == 0
}

// Err returns a ConfigError when the report carries violations, nil otherwise.
func (r *ValidationReport) Err() error {
	if r.OK() {
		return nil
	}
	return &ConfigError{Violations: r.Violations}
}

func (r *ValidationReport) fail(path, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{Path: path, Reason: fmt.Sprintf(format, args...)})
}

func (r *ValidationReport) lint(path, format string, args ...any) {
	r.Lints = append(r.Lints, Violation{Path: path, Reason: fmt.Sprintf(format, args...)})
}

// ParseConfig decodes a raw config document and validates it with the default
// rule ceiling. On failure the returned error is a *ConfigError enumerating
// every violation.
func ParseConfig(doc []byte) (*schema.CompetitivenessConfig, *ValidationReport, error) {
	var cfg schema.CompetitivenessConfig
	if err := json.Unmarshal(doc, &cfg); err != nil {
		report := &ValidationReport{}
		report.fail("$", "document is not valid config JSON: %v", err)
		return nil, report, report.Err()
	}
	report := ValidateConfig(&cfg, DefaultMaxRules)
	if err := report.Err(); err != nil {
		return nil, report, err
	}
	return &cfg, report, nil
}

// ValidateConfig checks a decoded config against the schema invariants and
// returns every violation found. maxRules <= 0 means DefaultMaxRules.
func ValidateConfig(cfg *schema.CompetitivenessConfig, maxRules int) *ValidationReport {
	report := &ValidationReport{}
	if maxRules <= 0 {
		maxRules = DefaultMaxRules
	}

	if strings.TrimSpace(cfg.Version) == "" {
		report.fail("version", "must be set")
	}

	validateCategories(cfg, report)
	levels := validateThresholds(cfg, report)
	validateDisqualifiers(cfg, levels, report)

	if n := cfg.RuleCount(); n > maxRules {
		report.fail("categories", "config carries %d rules, exceeding the ceiling of %d", n, maxRules)
	}

	return report
}

func validateCategories(cfg *schema.CompetitivenessConfig, report *ValidationReport) {
	if len(cfg.Categories) == 0 {
		report.fail("categories", "at least one category is required")
		return
	}

	seenKeys := make(map[string]bool)
	for i, cat := range cfg.Categories {
		path := fmt.Sprintf("categories[%d]", i)
		if strings.TrimSpace(cat.Key) == "" {
			report.fail(path+".key", "must be set")
		} else if seenKeys[cat.Key] {
			report.fail(path+".key", "duplicate category key %q", cat.Key)
		}
		seenKeys[cat.Key] = true

		if cat.MaxPoints <= 0 {
			report.fail(path+".maxPoints", "must be greater than 0 (received %g)", cat.MaxPoints)
		}

		seenIDs := make(map[string]bool)
		for j, rule := range cat.Rules {
			rulePath := fmt.Sprintf("%s.rules[%d]", path, j)
			validateRule(rule, rulePath, seenIDs, report)
		}
	}
}

func validateRule(rule schema.Rule, path string, seenIDs map[string]bool, report *ValidationReport) {
	if strings.TrimSpace(rule.ID) == "" {
		report.fail(path+".id", "must be set")
	} else if seenIDs[rule.ID] {
		report.fail(path+".id", "duplicate rule id %q within category", rule.ID)
	}
	seenIDs[rule.ID] = true

	if rule.Points < 0 {
		report.fail(path+".points", "must not be negative (received %g)", rule.Points)
	}
	if rule.Cap != nil {
		if *rule.Cap <= 0 {
			report.fail(path+".cap", "must be greater than 0 (received %g)", *rule.Cap)
		}
		if !rule.Repeatable {
			// Not fatal: the cap is simply inert on a single-shot rule, but it
			// usually signals the author forgot the repeatable flag.
			report.lint(path+".cap", "cap is set but rule is not repeatable; cap has no effect")
		}
	}
	if rule.Expr != nil {
		validateExpression(*rule.Expr, path+".expr", report)
	}
}

func validateExpression(expr schema.Expression, path string, report *ValidationReport) {
	if strings.TrimSpace(expr.Var) == "" {
		report.fail(path+".var", "must be set")
	}
	if _, ok := schema.ValidOperators[expr.Op]; !ok {
		report.fail(path+".op", "unknown operator %q; must be one of >=, >, ==, !=, <, <=, includes", string(expr.Op))
	}
	if expr.Value == nil {
		report.fail(path+".value", "must be set")
	}
}

// validateThresholds checks the threshold table and returns the set of level
// labels for disqualifier validation.
func validateThresholds(cfg *schema.CompetitivenessConfig, report *ValidationReport) map[string]bool {
	levels := make(map[string]bool)
	if len(cfg.Thresholds) == 0 {
		report.fail("thresholds", "at least one threshold is required")
		return levels
	}

	if cfg.Thresholds[0].Min != 0 {
		report.fail("thresholds[0].min", "lowest threshold must start at 0 (received %g)", cfg.Thresholds[0].Min)
	}
	prev := -1.0
	for i, t := range cfg.Thresholds {
		path := fmt.Sprintf("thresholds[%d]", i)
		if strings.TrimSpace(t.Level) == "" {
			report.fail(path+".level", "must be set")
		}
		if levels[t.Level] {
			report.fail(path+".level", "duplicate level %q", t.Level)
		}
		levels[t.Level] = true

		if t.Min < 0 || t.Min > 100 {
			report.fail(path+".min", "must be between 0 and 100 (received %g)", t.Min)
		}
		if t.Min <= prev && i > 0 {
			report.fail(path+".min", "thresholds must be strictly ascending by min (%g after %g)", t.Min, prev)
		}
		prev = t.Min
	}
	return levels
}

func validateDisqualifiers(cfg *schema.CompetitivenessConfig, levels map[string]bool, report *ValidationReport) {
	for i, dq := range cfg.Disqualifiers {
		path := fmt.Sprintf("disqualifiers[%d]", i)
		validateExpression(dq.Expr, path+".expr", report)
		if strings.TrimSpace(dq.ForcedLevel) == "" {
			report.fail(path+".forcedLevel", "must be set")
		} else if len(levels) > 0 && !levels[dq.ForcedLevel] {
			report.fail(path+".forcedLevel", "level %q is not defined in thresholds", dq.ForcedLevel)
		}
	}
}
