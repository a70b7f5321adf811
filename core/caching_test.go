package core

import (
	"testing"
	"time"

	"github.com/recruitready/compscore/internal/iocache"
	"github.com/recruitready/compscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoizedEvaluateMissThenHit runs the same evaluation twice and expects
// the second to come from the memo.
func TestMemoizedEvaluateMissThenHit(t *testing.T) {
	cfg := schema.DefaultConfig()
	profile := mustProfile(t, strongProfile)
	store := iocache.NewMockMemoStore()
	mgr := &iocache.MockMemoManager{Store: store}

	first, hit := MemoizedEvaluate(cfg, profile, mgr)
	assert.False(t, hit)
	assert.Equal(t, 1, store.Len())

	second, hit := MemoizedEvaluate(cfg, profile, mgr)
	assert.True(t, hit)
	assert.Equal(t, first, second)
}

// TestMemoizedEvaluateKeyedByVersion checks a config version bump routes
// around old entries.
func TestMemoizedEvaluateKeyedByVersion(t *testing.T) {
	cfg := schema.DefaultConfig()
	profile := mustProfile(t, strongProfile)
	store := iocache.NewMockMemoStore()
	mgr := &iocache.MockMemoManager{Store: store}

	_, hit := MemoizedEvaluate(cfg, profile, mgr)
	assert.False(t, hit)

	bumped := *cfg
	bumped.Version = "builtin-2"
	_, hit = MemoizedEvaluate(&bumped, profile, mgr)
	assert.False(t, hit, "a new version must not hit the old entry")
	assert.Equal(t, 2, store.Len())
}

// TestMemoizedEvaluateBrokenStore treats store failures as misses.
func TestMemoizedEvaluateBrokenStore(t *testing.T) {
	cfg := schema.DefaultConfig()
	profile := mustProfile(t, strongProfile)
	store := iocache.NewMockMemoStore()
	store.FailSet = true
	mgr := &iocache.MockMemoManager{Store: store}

	result, hit := MemoizedEvaluate(cfg, profile, mgr)
	assert.False(t, hit)
	require.NotNil(t, result)
	assert.Equal(t, 0, store.Len())

	// Dropped writes just mean every call is a miss.
	result, hit = MemoizedEvaluate(cfg, profile, mgr)
	assert.False(t, hit)
	require.NotNil(t, result)
}

// TestMemoizedEvaluateCorruptEntry falls back to evaluation when the stored
// bytes do not decode.
func TestMemoizedEvaluateCorruptEntry(t *testing.T) {
	cfg := schema.DefaultConfig()
	profile := mustProfile(t, strongProfile)
	store := iocache.NewMockMemoStore()
	mgr := &iocache.MockMemoManager{Store: store}

	key := memoKey(cfg.Version, profile.Hash())
	require.NoError(t, store.Set(key, []byte("not json"), memoVersion, time.Now().Unix()))

	result, hit := MemoizedEvaluate(cfg, profile, mgr)
	assert.False(t, hit)
	require.NotNil(t, result)
	assert.InDelta(t, 95.0, result.TotalPercent, 0.0001)
}

// TestMemoizedEvaluateVersionMismatch ignores entries written by a different
// memo format version.
func TestMemoizedEvaluateVersionMismatch(t *testing.T) {
	cfg := schema.DefaultConfig()
	profile := mustProfile(t, strongProfile)
	store := iocache.NewMockMemoStore()
	mgr := &iocache.MockMemoManager{Store: store}

	key := memoKey(cfg.Version, profile.Hash())
	require.NoError(t, store.Set(key, []byte(`{}`), memoVersion+1, time.Now().Unix()))

	_, hit := MemoizedEvaluate(cfg, profile, mgr)
	assert.False(t, hit)
}

// TestMemoizedEvaluateNilManager degrades to a plain evaluation.
func TestMemoizedEvaluateNilManager(t *testing.T) {
	cfg := schema.DefaultConfig()
	profile := mustProfile(t, strongProfile)

	result, hit := MemoizedEvaluate(cfg, profile, nil)
	assert.False(t, hit)
	require.NotNil(t, result)
}
