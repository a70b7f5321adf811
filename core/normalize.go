package core

import (
	"github.com/recruitready/compscore/schema"
)

// sumCategoryScores totals points and maxPoints across categories and derives
// the overall percentage, clamped to [0, 100]. Summation follows the config's
// category order; float addition is not associative, so iterating the score
// map would let the total (and a boundary-sitting level) vary between runs.
func sumCategoryScores(categories []schema.Category, scores map[string]schema.CategoryScore) (total, max, percent float64) {
	for _, cat := range categories {
		s := scores[cat.Key]
		total += s.Points
		max += s.MaxPoints
	}
	if max > 0 {
		percent = clamp(100*total/max, 0, 100)
	}
	return total, max, percent
}

// mapLevel assigns the readiness level for a percentage: the label of the
// highest threshold whose Min is at or below the percentage. The lower bound
// is inclusive, so a score landing exactly on a breakpoint earns that
// threshold's level, not the one below it. Thresholds are sorted ascending by
// Min (the validator enforces this), so the last match wins.
func mapLevel(thresholds []schema.Threshold, percent float64) string {
	level := ""
	for _, t := range thresholds {
		if t.Min <= percent {
			level = t.Level
		}
	}
	if level == "" && len(thresholds) > 0 {
		// Defensive: with a zero-based table this cannot happen, but an
		// unvalidated table should still map to its lowest tier.
		level = thresholds[0].Level
	}
	return level
}
