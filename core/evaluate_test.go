package core

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/recruitready/compscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/sjson"
)

// strongProfile scores well across the default categories.
const strongProfile = `{
	"work": {"totalYears": 6, "policeRelatedYears": 3},
	"education": {"highestLevel": "bachelor_degree", "programs": ["police_foundations"]},
	"volunteer": {"totalHours": 250, "roles": ["community", "coach"]},
	"certs": [
		{"type": "first_aid", "current": true},
		{"type": "cpr_c", "current": true},
		{"type": "cpr_c", "current": false}
	],
	"fitness": {"prepTestPassed": true, "shuttleRunLevel": 8},
	"softskills": {"languages": 2},
	"references": {"count": 3},
	"background": {"criminalConviction": false},
	"driving": {"licenceSuspended": false}
}`

// TestEvaluateStrongCandidate walks the default config end to end.
func TestEvaluateStrongCandidate(t *testing.T) {
	cfg := schema.DefaultConfig()
	profile := mustProfile(t, strongProfile)

	result := Evaluate(cfg, profile)

	// Per-category expectations against the built-in rule set.
	assert.InDelta(t, 25.0, result.CategoryScores["work"].Points, 0.0001)
	assert.InDelta(t, 20.0, result.CategoryScores["education"].Points, 0.0001)
	assert.InDelta(t, 10.0, result.CategoryScores["volunteer"].Points, 0.0001)
	// first_aid (5) + two cpr_c entries at 5 each repeatable (10) = 15.
	assert.InDelta(t, 15.0, result.CategoryScores["certs"].Points, 0.0001)
	assert.InDelta(t, 15.0, result.CategoryScores["fitness"].Points, 0.0001)
	assert.InDelta(t, 10.0, result.CategoryScores["softskills"].Points, 0.0001)

	assert.InDelta(t, 95.0, result.TotalScore, 0.0001)
	assert.InDelta(t, 100.0, result.TotalMaxPoints, 0.0001)
	assert.InDelta(t, 95.0, result.TotalPercent, 0.0001)
	assert.Equal(t, schema.LevelCompetitive, result.Level)
	assert.False(t, result.Disqualified)
	assert.Empty(t, result.Warnings)
}

// TestEvaluateDisqualifiedCandidate checks the gate overrides the level while
// the breakdown keeps the raw scores.
func TestEvaluateDisqualifiedCandidate(t *testing.T) {
	cfg := schema.DefaultConfig()
	doc, err := sjson.SetBytes([]byte(strongProfile), "background.criminalConviction", true)
	require.NoError(t, err)
	profile, err := schema.NewCandidateProfile(doc)
	require.NoError(t, err)

	result := Evaluate(cfg, profile)

	assert.True(t, result.Disqualified)
	assert.Equal(t, schema.LevelNeedsWork, result.Level)
	require.Len(t, result.Disqualifiers, 1)
	assert.Equal(t, "background.criminalConviction", result.Disqualifiers[0].Var)

	// Raw totals survive for diagnostics.
	assert.InDelta(t, 95.0, result.TotalScore, 0.0001)
	assert.InDelta(t, 95.0, result.TotalPercent, 0.0001)
}

// TestEvaluateDeterministic verifies identical inputs produce byte-identical
// result documents.
func TestEvaluateDeterministic(t *testing.T) {
	cfg := schema.DefaultConfig()
	profile := mustProfile(t, strongProfile)

	first, err := json.Marshal(Evaluate(cfg, profile))
	require.NoError(t, err)

	for range 5 {
		next, err := json.Marshal(Evaluate(cfg, profile))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(next))
	}
}

// TestEvaluateDeterministicFractionalPoints repeats an evaluation whose
// categories carry non-associative fractional points and whose perfect score
// sits exactly on the top threshold. The totals must be bit-identical and the
// level must never slip below the boundary.
func TestEvaluateDeterministicFractionalPoints(t *testing.T) {
	points := []float64{0.1, 0.2, 0.3, 0.7, 1.1, 2.3, 3.3, 5.5, 0.01, 0.001}
	cfg := &schema.CompetitivenessConfig{
		Version: "fractional-1",
		Thresholds: []schema.Threshold{
			{Level: "needs work", Min: 0},
			{Level: "competitive", Min: 100},
		},
	}
	for i, p := range points {
		cfg.Categories = append(cfg.Categories, schema.Category{
			Key:       fmt.Sprintf("cat%02d", i),
			MaxPoints: p,
			Rules:     []schema.Rule{{ID: fmt.Sprintf("r%02d", i), Points: p}},
		})
	}
	profile := mustProfile(t, `{}`)

	first := Evaluate(cfg, profile)
	require.Equal(t, "competitive", first.Level)

	for range 2000 {
		next := Evaluate(cfg, profile)
		require.Equal(t, first.TotalScore, next.TotalScore)
		require.Equal(t, first.TotalPercent, next.TotalPercent)
		require.Equal(t, first.Level, next.Level)
	}
}

// TestEvaluateThresholdBoundary lands a score exactly on a breakpoint.
func TestEvaluateThresholdBoundary(t *testing.T) {
	cfg := &schema.CompetitivenessConfig{
		Version: "boundary-1",
		Categories: []schema.Category{
			{Key: "only", MaxPoints: 10, Rules: []schema.Rule{
				{ID: "a", Points: 6, Expr: &schema.Expression{Var: "x", Op: schema.OpGTE, Value: 1.0}},
			}},
		},
		Thresholds: []schema.Threshold{
			{Level: "needs work", Min: 0},
			{Level: "developing", Min: 40},
			{Level: "promising", Min: 60},
		},
	}
	profile := mustProfile(t, `{"x": 1}`)

	result := Evaluate(cfg, profile)
	assert.InDelta(t, 60.0, result.TotalPercent, 0.0001)
	assert.Equal(t, "promising", result.Level, "a score on the boundary earns the higher level")
}

// TestEvaluateEmptyProfile scores zero, maps to the lowest tier, and warns for
// every unresolved rule path.
func TestEvaluateEmptyProfile(t *testing.T) {
	cfg := schema.DefaultConfig()
	profile := mustProfile(t, `{}`)

	result := Evaluate(cfg, profile)
	assert.Zero(t, result.TotalScore)
	assert.Equal(t, schema.LevelNeedsWork, result.Level)
	assert.False(t, result.Disqualified, "unresolvable disqualifiers fail open")
	assert.NotEmpty(t, result.Warnings)
}

// TestEvaluationResultRoundTrip checks the result document survives JSON
// encoding unchanged.
func TestEvaluationResultRoundTrip(t *testing.T) {
	cfg := schema.DefaultConfig()
	profile := mustProfile(t, strongProfile)
	result := Evaluate(cfg, profile)

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded schema.EvaluationResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *result, decoded)
}
