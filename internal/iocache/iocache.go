package iocache

import (
	"sync"

	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/schema"
)

// MemoStoreManager manages the process-wide memo store instance.
type MemoStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	memo         contract.MemoStore
}

var _ contract.MemoManager = &MemoStoreManager{} // Compile-time check

// GetMemoStore returns the memo store, or nil when memoization is disabled.
func (mgr *MemoStoreManager) GetMemoStore() contract.MemoStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.memo
}

var globalManager = &MemoStoreManager{}

// Manager returns the global memo store manager.
func Manager() *MemoStoreManager {
	return globalManager
}

// InitStores initializes the global memo store with the validated backend
// configuration. Safe to call once per process before evaluations start.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	store, err := NewMemoStore(backend, connStr)
	if err != nil {
		return err
	}
	globalManager.Lock()
	globalManager.memo = store
	globalManager.Unlock()
	return nil
}

// CloseStores closes the global memo store if initialized.
func CloseStores() error {
	globalManager.Lock()
	defer globalManager.Unlock()
	if globalManager.memo == nil {
		return nil
	}
	err := globalManager.memo.Close()
	globalManager.memo = nil
	return err
}
