package schema

// Default readiness levels used by the built-in config, lowest to highest.
const (
	LevelNeedsWork   = "Needs Work"
	LevelDeveloping  = "Developing"
	LevelPromising   = "Promising"
	LevelCompetitive = "Competitive"
)

func capOf(v float64) *float64 { return &v }

// DefaultConfig returns the built-in competitiveness rule set. It is used when
// no config has been published yet and serves as the reference document for
// administrators editing their own. The shape mirrors what the config store
// persists as JSON.
func DefaultConfig() *CompetitivenessConfig {
	return &CompetitivenessConfig{
		Version: "builtin-1",
		Categories: []Category{
			{
				Key:         "work",
				DisplayName: "Work Experience",
				MaxPoints:   25,
				Rules: []Rule{
					{ID: "any_work_2y_plus", Points: 5, Expr: &Expression{Var: "work.totalYears", Op: OpGTE, Value: 2.0}},
					{ID: "relevant_1y_plus", Points: 10, Expr: &Expression{Var: "work.policeRelatedYears", Op: OpGTE, Value: 1.0}},
					{ID: "relevant_3y_plus", Points: 10, Expr: &Expression{Var: "work.policeRelatedYears", Op: OpGTE, Value: 3.0}},
				},
			},
			{
				Key:         "education",
				DisplayName: "Education",
				MaxPoints:   20,
				Rules: []Rule{
					{ID: "high_school", Points: 5, Expr: &Expression{Var: "education.highestLevel", Op: OpNE, Value: "none"}},
					{ID: "post_secondary", Points: 10, Expr: &Expression{Var: "education.highestLevel", Op: OpIncludes, Value: "degree"}},
					{ID: "police_foundations", Points: 5, Expr: &Expression{Var: "education.programs", Op: OpIncludes, Value: "police_foundations"}},
				},
			},
			{
				Key:         "volunteer",
				DisplayName: "Volunteering",
				MaxPoints:   15,
				Rules: []Rule{
					{ID: "volunteer_100h", Points: 5, Expr: &Expression{Var: "volunteer.totalHours", Op: OpGTE, Value: 100.0}},
					{ID: "community_role", Points: 5, Repeatable: true, Cap: capOf(10), Expr: &Expression{Var: "volunteer.roles", Op: OpIncludes, Value: "community"}},
				},
			},
			{
				Key:         "certs",
				DisplayName: "Certifications",
				MaxPoints:   15,
				Rules: []Rule{
					{ID: "first_aid_current", Points: 5, Expr: &Expression{Var: "certs", Op: OpIncludes, Value: "first_aid"}},
					{ID: "extra_relevant_cert", Points: 5, Repeatable: true, Cap: capOf(10), Expr: &Expression{Var: "certs", Op: OpIncludes, Value: "cpr_c"}},
				},
			},
			{
				Key:         "fitness",
				DisplayName: "Fitness Readiness",
				MaxPoints:   15,
				Rules: []Rule{
					{ID: "prep_pass", Points: 10, Expr: &Expression{Var: "fitness.prepTestPassed", Op: OpEQ, Value: true}},
					{ID: "shuttle_level_7", Points: 5, Expr: &Expression{Var: "fitness.shuttleRunLevel", Op: OpGTE, Value: 7.0}},
				},
			},
			{
				Key:         "softskills",
				DisplayName: "Soft Skills & References",
				MaxPoints:   10,
				Rules: []Rule{
					{ID: "second_language", Points: 5, Expr: &Expression{Var: "softskills.languages", Op: OpGT, Value: 1.0}},
					{ID: "references_3_plus", Points: 5, Expr: &Expression{Var: "references.count", Op: OpGTE, Value: 3.0}},
				},
			},
		},
		Thresholds: []Threshold{
			{Level: LevelNeedsWork, Min: 0},
			{Level: LevelDeveloping, Min: 40},
			{Level: LevelPromising, Min: 60},
			{Level: LevelCompetitive, Min: 80},
		},
		Disqualifiers: []Disqualifier{
			{Expr: Expression{Var: "background.criminalConviction", Op: OpEQ, Value: true}, ForcedLevel: LevelNeedsWork},
			{Expr: Expression{Var: "driving.licenceSuspended", Op: OpEQ, Value: true}, ForcedLevel: LevelNeedsWork},
		},
	}
}
