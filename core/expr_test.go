package core

import (
	"testing"

	"github.com/recruitready/compscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProfile(t *testing.T, doc string) schema.CandidateProfile {
	t.Helper()
	profile, err := schema.NewCandidateProfile([]byte(doc))
	require.NoError(t, err)
	return profile
}

// TestEvalExpressionComparisons covers the comparison operators against scalar
// profile values.
func TestEvalExpressionComparisons(t *testing.T) {
	profile := mustProfile(t, `{
		"work": {"totalYears": 4, "policeRelatedYears": "2.5"},
		"fitness": {"prepTestPassed": true},
		"education": {"highestLevel": "college_diploma"}
	}`)

	tests := []struct {
		name    string
		expr    schema.Expression
		matched bool
		count   int
	}{
		{
			name:    "gte match",
			expr:    schema.Expression{Var: "work.totalYears", Op: schema.OpGTE, Value: 2.0},
			matched: true,
			count:   1,
		},
		{
			name:    "gte boundary inclusive",
			expr:    schema.Expression{Var: "work.totalYears", Op: schema.OpGTE, Value: 4.0},
			matched: true,
			count:   1,
		},
		{
			name:    "gt miss on equal",
			expr:    schema.Expression{Var: "work.totalYears", Op: schema.OpGT, Value: 4.0},
			matched: false,
		},
		{
			name:    "lt match",
			expr:    schema.Expression{Var: "work.totalYears", Op: schema.OpLT, Value: 10.0},
			matched: true,
			count:   1,
		},
		{
			name:    "numeric string coerces",
			expr:    schema.Expression{Var: "work.policeRelatedYears", Op: schema.OpGTE, Value: 2.0},
			matched: true,
			count:   1,
		},
		{
			name:    "bool equality",
			expr:    schema.Expression{Var: "fitness.prepTestPassed", Op: schema.OpEQ, Value: true},
			matched: true,
			count:   1,
		},
		{
			name:    "string equality",
			expr:    schema.Expression{Var: "education.highestLevel", Op: schema.OpEQ, Value: "college_diploma"},
			matched: true,
			count:   1,
		},
		{
			name:    "string inequality",
			expr:    schema.Expression{Var: "education.highestLevel", Op: schema.OpNE, Value: "none"},
			matched: true,
			count:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := evalExpression(&tt.expr, profile)
			assert.Equal(t, tt.matched, out.matched)
			assert.Equal(t, tt.count, out.count)
			assert.Empty(t, out.warnings)
		})
	}
}

// TestEvalExpressionWarnings checks that bad paths and impossible coercions
// evaluate to false with a warning instead of failing the evaluation.
func TestEvalExpressionWarnings(t *testing.T) {
	profile := mustProfile(t, `{"education": {"highestLevel": "college_diploma"}}`)

	t.Run("unresolved path", func(t *testing.T) {
		expr := schema.Expression{Var: "work.totalYears", Op: schema.OpGTE, Value: 2.0}
		out := evalExpression(&expr, profile)
		assert.False(t, out.matched)
		require.Len(t, out.warnings, 1)
		assert.Equal(t, schema.WarnUnresolvedPath, out.warnings[0].Kind)
		assert.Equal(t, "work.totalYears", out.warnings[0].Var)
	})

	t.Run("ordered comparison on non-numeric string", func(t *testing.T) {
		expr := schema.Expression{Var: "education.highestLevel", Op: schema.OpGTE, Value: 2.0}
		out := evalExpression(&expr, profile)
		assert.False(t, out.matched)
		require.Len(t, out.warnings, 1)
		assert.Equal(t, schema.WarnCoercionFailure, out.warnings[0].Kind)
	})

	t.Run("includes string needs string value", func(t *testing.T) {
		expr := schema.Expression{Var: "education.highestLevel", Op: schema.OpIncludes, Value: 42.0}
		out := evalExpression(&expr, profile)
		assert.False(t, out.matched)
		require.Len(t, out.warnings, 1)
		assert.Equal(t, schema.WarnCoercionFailure, out.warnings[0].Kind)
	})
}

// TestEvalExpressionIncludes covers membership on arrays and substring
// containment on strings.
func TestEvalExpressionIncludes(t *testing.T) {
	profile := mustProfile(t, `{
		"education": {"highestLevel": "bachelor_degree", "programs": ["police_foundations", "criminology"]},
		"volunteer": {"roles": ["community", "coach", "community"]},
		"certs": [
			{"type": "first_aid", "current": true},
			{"type": "cpr_c", "current": true},
			{"type": "cpr_c", "current": false}
		]
	}`)

	tests := []struct {
		name    string
		expr    schema.Expression
		matched bool
		count   int
	}{
		{
			name:    "substring on string",
			expr:    schema.Expression{Var: "education.highestLevel", Op: schema.OpIncludes, Value: "degree"},
			matched: true,
			count:   1,
		},
		{
			name:    "string array membership",
			expr:    schema.Expression{Var: "education.programs", Op: schema.OpIncludes, Value: "police_foundations"},
			matched: true,
			count:   1,
		},
		{
			name:    "string array counts duplicates",
			expr:    schema.Expression{Var: "volunteer.roles", Op: schema.OpIncludes, Value: "community"},
			matched: true,
			count:   2,
		},
		{
			name:    "object array matches scalar against fields",
			expr:    schema.Expression{Var: "certs", Op: schema.OpIncludes, Value: "cpr_c"},
			matched: true,
			count:   2,
		},
		{
			name:    "object array structural match",
			expr:    schema.Expression{Var: "certs", Op: schema.OpIncludes, Value: map[string]any{"type": "cpr_c", "current": true}},
			matched: true,
			count:   1,
		},
		{
			name:    "array miss",
			expr:    schema.Expression{Var: "education.programs", Op: schema.OpIncludes, Value: "law"},
			matched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := evalExpression(&tt.expr, profile)
			assert.Equal(t, tt.matched, out.matched)
			assert.Equal(t, tt.count, out.count)
		})
	}
}

// TestEvalExpressionArrayComparison counts array elements satisfying a
// comparison operator.
func TestEvalExpressionArrayComparison(t *testing.T) {
	profile := mustProfile(t, `{"scores": [3, 7, 9, 2]}`)

	expr := schema.Expression{Var: "scores", Op: schema.OpGTE, Value: 5.0}
	out := evalExpression(&expr, profile)
	assert.True(t, out.matched)
	assert.Equal(t, 2, out.count)
}

// TestLooseEqual checks the equality used by includes across type pairs.
func TestLooseEqual(t *testing.T) {
	profile := mustProfile(t, `{"n": 3, "s": "3", "b": true, "t": "abc"}`)

	expr := schema.Expression{Var: "s", Op: schema.OpEQ, Value: 3.0}
	out := evalExpression(&expr, profile)
	assert.True(t, out.matched, "numeric string should coerce for equality")

	expr = schema.Expression{Var: "b", Op: schema.OpEQ, Value: false}
	out = evalExpression(&expr, profile)
	assert.False(t, out.matched)
	assert.Empty(t, out.warnings, "same-type bool comparison needs no coercion")

	expr = schema.Expression{Var: "t", Op: schema.OpNE, Value: "xyz"}
	out = evalExpression(&expr, profile)
	assert.True(t, out.matched)
}
