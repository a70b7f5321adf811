package core

import (
	"github.com/recruitready/compscore/schema"
)

// Evaluate runs one full evaluation of a profile against a config. It is a
// pure function: identical inputs always produce an identical result, with no
// reliance on wall-clock time, randomness or shared state, so it is safe to
// call concurrently and to replay for administrator previews.
//
// The config is assumed to have passed validation when it was loaded;
// Evaluate itself never mutates it.
func Evaluate(cfg *schema.CompetitivenessConfig, profile schema.CandidateProfile) *schema.EvaluationResult {
	result := &schema.EvaluationResult{
		Version:        cfg.Version,
		CategoryScores: make(map[string]schema.CategoryScore, len(cfg.Categories)),
	}

	// Warnings accumulate in config order so replays are byte-identical.
	for _, cat := range cfg.Categories {
		score, warnings := accumulateCategory(cat, profile)
		result.CategoryScores[cat.Key] = score
		result.Warnings = append(result.Warnings, warnings...)
	}

	result.TotalScore, result.TotalMaxPoints, result.TotalPercent = sumCategoryScores(cfg.Categories, result.CategoryScores)
	result.Level = mapLevel(cfg.Thresholds, result.TotalPercent)

	fired, gateWarnings := evaluateDisqualifiers(cfg, profile)
	result.Warnings = append(result.Warnings, gateWarnings...)
	if len(fired) > 0 {
		// The category breakdown stays untouched for diagnostics; only the
		// level is overridden.
		result.Disqualified = true
		result.Disqualifiers = fired
		result.Level = mostSevereLevel(fired, cfg.Thresholds)
	}

	return result
}
