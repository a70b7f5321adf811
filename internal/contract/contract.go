// Package contract provides interfaces and shared utilities for the compscore
// CLI's internal architecture.
package contract

import (
	"context"
	"time"
)

// MemoManager defines the interface for managing memo stores.
// This allows the memo layer to be mocked for testing.
type MemoManager interface {
	GetMemoStore() MemoStore
}

// MemoStore defines the interface for memoized evaluation results.
// This allows mocking the store for testing.
type MemoStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	Close() error
}

// ConfigRevision describes one published revision of a config document.
type ConfigRevision struct {
	ID        string
	Key       string
	Payload   string
	EditorID  string
	Note      string
	CreatedAt time.Time
}

// ConfigStore defines the persistence interface for competitiveness configs.
// GetContent returns the latest published revision; absent is reported through
// the boolean, not an error. UpdateContent validates and publishes atomically:
// readers either see the previous revision in full or the new one in full.
type ConfigStore interface {
	GetContent(ctx context.Context, key string) (string, bool, error)
	UpdateContent(ctx context.Context, key, payload, editorID, note string) (ConfigRevision, error)
	History(ctx context.Context, key string, limit int) ([]ConfigRevision, error)
	Close() error
}
