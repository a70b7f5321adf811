package iocache

import (
	"database/sql"
	"sync"

	"github.com/recruitready/compscore/internal/contract"
)

// MockMemoStore is an in-memory MemoStore for tests.
type MockMemoStore struct {
	mu      sync.Mutex
	entries map[string]mockEntry
	// FailSet forces Set to drop writes silently, mimicking a broken backend.
	FailSet bool
}

type mockEntry struct {
	value     []byte
	version   int
	timestamp int64
}

var _ contract.MemoStore = &MockMemoStore{} // Compile-time check

// NewMockMemoStore returns an empty in-memory store.
func NewMockMemoStore() *MockMemoStore {
	return &MockMemoStore{entries: make(map[string]mockEntry)}
}

// Get retrieves a value by key.
func (m *MockMemoStore) Get(key string) ([]byte, int, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return nil, 0, 0, sql.ErrNoRows
	}
	return entry.value, entry.version, entry.timestamp, nil
}

// Set stores a value by key.
func (m *MockMemoStore) Set(key string, value []byte, version int, timestamp int64) error {
	if m.FailSet {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = mockEntry{value: value, version: version, timestamp: timestamp}
	return nil
}

// Len reports the number of stored entries.
func (m *MockMemoStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close is a no-op.
func (m *MockMemoStore) Close() error { return nil }

// MockMemoManager wraps a MockMemoStore as a MemoManager.
type MockMemoManager struct {
	Store contract.MemoStore
}

var _ contract.MemoManager = &MockMemoManager{} // Compile-time check

// GetMemoStore returns the wrapped store.
func (m *MockMemoManager) GetMemoStore() contract.MemoStore {
	return m.Store
}
