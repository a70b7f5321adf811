package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/schema"
)

// memoVersion guards against result-shape changes across releases.
const memoVersion = 1

// MemoizedEvaluate runs Evaluate with a (configVersion, profileHash) memo in
// front of it. The memo is owned by the caller, never by the engine: Evaluate
// itself stays pure and the memo is a plain lookaside. The second return
// reports whether the result came from the memo.
func MemoizedEvaluate(cfg *schema.CompetitivenessConfig, profile schema.CandidateProfile, mgr contract.MemoManager) (*schema.EvaluationResult, bool) {
	if mgr == nil {
		return Evaluate(cfg, profile), false
	}
	memo := mgr.GetMemoStore()
	if memo == nil {
		return Evaluate(cfg, profile), false
	}

	key := memoKey(cfg.Version, profile.Hash())

	if result := checkMemoHit(memo, key); result != nil {
		return result, true
	}

	result := Evaluate(cfg, profile)
	if data, err := json.Marshal(result); err == nil {
		_ = memo.Set(key, data, memoVersion, time.Now().Unix())
	}
	return result, false
}

// checkMemoHit retrieves and decodes a memoized result, treating any failure
// as a miss. Results never go stale on their own because evaluation is
// deterministic; only a memoVersion bump invalidates them.
func checkMemoHit(memo contract.MemoStore, key string) *schema.EvaluationResult {
	data, version, _, err := memo.Get(key)
	if err != nil || version != memoVersion {
		return nil
	}
	var result schema.EvaluationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

// memoKey derives the storage key from the config version and profile hash.
func memoKey(configVersion, profileHash string) string {
	key := fmt.Sprintf("%s:%s", configVersion, profileHash)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
