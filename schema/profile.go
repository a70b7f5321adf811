package schema

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// CandidateProfile is a read-only JSON document of structured applicant data.
// The engine only ever reads it through dotted-path lookups, so the document
// is kept as raw bytes alongside a content hash used for memoization.
type CandidateProfile struct {
	doc  []byte
	hash string
}

// NewCandidateProfile wraps a JSON document as a profile. The document must be
// valid JSON with an object at the top level.
func NewCandidateProfile(doc []byte) (CandidateProfile, error) {
	if !json.Valid(doc) {
		return CandidateProfile{}, fmt.Errorf("profile document is not valid JSON")
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(doc, &probe); err != nil {
		return CandidateProfile{}, fmt.Errorf("profile document must be a JSON object: %w", err)
	}
	owned := make([]byte, len(doc))
	copy(owned, doc)
	return CandidateProfile{
		doc:  owned,
		hash: fmt.Sprintf("%x", sha256.Sum256(owned)),
	}, nil
}

// Doc returns the raw profile document.
func (p CandidateProfile) Doc() []byte {
	return p.doc
}

// Hash returns the hex-encoded content hash of the document. Two profiles
// built from the same bytes always share a hash, which makes it a stable
// memoization key component.
func (p CandidateProfile) Hash() string {
	return p.hash
}

// IsZero reports whether the profile holds no document.
func (p CandidateProfile) IsZero() bool {
	return p.doc == nil
}
