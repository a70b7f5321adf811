package core

import (
	"fmt"
	"testing"

	"github.com/recruitready/compscore/schema"
	"github.com/stretchr/testify/assert"
)

// TestMapLevel covers boundary inclusivity and the tier spans.
func TestMapLevel(t *testing.T) {
	tests := []struct {
		percent  float64
		expected string
	}{
		{0, "needs work"},
		{39.9, "needs work"},
		{40, "developing"},
		{59.9, "developing"},
		{60, "promising"},
		{79.9, "promising"},
		{80, "competitive"},
		{100, "competitive"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mapLevel(gateThresholds, tt.percent), "percent %.1f", tt.percent)
	}
}

// TestSumCategoryScores verifies totals and the derived percentage.
func TestSumCategoryScores(t *testing.T) {
	categories := []schema.Category{{Key: "work"}, {Key: "education"}, {Key: "fitness"}}
	scores := map[string]schema.CategoryScore{
		"work":      {Points: 15, MaxPoints: 25},
		"education": {Points: 10, MaxPoints: 20},
		"fitness":   {Points: 5, MaxPoints: 15},
	}

	total, max, percent := sumCategoryScores(categories, scores)
	assert.InDelta(t, 30.0, total, 0.0001)
	assert.InDelta(t, 60.0, max, 0.0001)
	assert.InDelta(t, 50.0, percent, 0.0001)
}

// TestSumCategoryScoresStableOrder checks the total is the exact config-order
// float sum, not whatever order the score map happens to iterate in.
func TestSumCategoryScoresStableOrder(t *testing.T) {
	points := []float64{0.1, 0.2, 0.3, 0.7, 1.1, 2.3, 3.3, 5.5, 0.01, 0.001}
	var categories []schema.Category
	scores := make(map[string]schema.CategoryScore, len(points))
	expected := 0.0
	for i, p := range points {
		key := fmt.Sprintf("cat%02d", i)
		categories = append(categories, schema.Category{Key: key})
		scores[key] = schema.CategoryScore{Points: p, MaxPoints: p}
		expected += p
	}

	first, firstMax, firstPercent := sumCategoryScores(categories, scores)
	assert.Equal(t, expected, first)
	for range 100 {
		total, max, percent := sumCategoryScores(categories, scores)
		assert.Equal(t, first, total)
		assert.Equal(t, firstMax, max)
		assert.Equal(t, firstPercent, percent)
	}
}

// TestSumCategoryScoresEmpty guards the zero-category edge.
func TestSumCategoryScoresEmpty(t *testing.T) {
	total, max, percent := sumCategoryScores(nil, nil)
	assert.Zero(t, total)
	assert.Zero(t, max)
	assert.Zero(t, percent)
}
