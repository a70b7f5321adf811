package iocache

import (
	"fmt"
)

// ClearMemo removes every memoized result from the initialized store.
func ClearMemo() error {
	store := globalManager.GetMemoStore()
	if store == nil {
		return fmt.Errorf("memo store is not initialized")
	}
	impl, ok := store.(*MemoStoreImpl)
	if !ok {
		return fmt.Errorf("memo store does not support clearing")
	}
	return impl.Clear()
}

// Status reports backend, connection and entry statistics for the initialized
// memo store.
func Status() (MemoStatus, error) {
	store := globalManager.GetMemoStore()
	if store == nil {
		return MemoStatus{}, fmt.Errorf("memo store is not initialized")
	}
	impl, ok := store.(*MemoStoreImpl)
	if !ok {
		return MemoStatus{}, fmt.Errorf("memo store does not support status")
	}
	return impl.GetStatus()
}

// PrintMemoStatus prints memo status information.
func PrintMemoStatus(status MemoStatus) {
	fmt.Printf("Memo Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Printf("Last Entry: %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
	}
}
