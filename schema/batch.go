package schema

// BatchRow pairs one profile from a roster with its evaluation outcome.
// ProfileID comes from the profile document's "id" field when present,
// otherwise the row index is used.
type BatchRow struct {
	ProfileID string            `json:"profileId"`
	Result    *EvaluationResult `json:"result,omitempty"`
	Err       string            `json:"error,omitempty"`
}
