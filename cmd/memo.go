package cmd

import (
	"fmt"

	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/internal/iocache"
	"github.com/recruitready/compscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// memoSetup loads minimal configuration needed for memo operations.
// This is used by commands that need memo access without full shared setup.
func memoSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get memo-related config values
	backend := schema.DatabaseBackend(viper.GetString("memo-backend"))
	connStr := viper.GetString("memo-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize memoization: %w", err)
	}

	cfg.MemoBackend = backend
	cfg.MemoDBConnect = connStr

	return nil
}

// memoSetupWrapper wraps memoSetup to provide PreRunE for memo commands.
func memoSetupWrapper(_ *cobra.Command, _ []string) error {
	return memoSetup()
}

// memoCmd focused on memo management.
//
// Note: Memo subcommands use minimal initialization (memoSetup) instead of the
// full sharedSetup used by evaluation commands. This avoids config store setup
// for simple maintenance operations.
var memoCmd = &cobra.Command{
	Use:   "memo",
	Short: "Manage memoized evaluation results (improves performance)",
	Long: `Manage the memo layer that caches evaluation results keyed by
(config version, profile hash).

Memoized results never go stale on their own because evaluation is
deterministic; publishing a config with a new version label routes around old
entries automatically.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show memo statistics and connection info
  clear  - Remove all memoized results

Examples:
  # Check memo status
  compscore memo status

  # Clear memoized results after reusing a version label
  compscore memo clear`,
}

// memoClearCmd clears the memo store.
var memoClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all memoized evaluation results",
	Long: `Delete every memoized evaluation result from the configured backend.

Use this when:
- A config was republished under an existing version label
- The memo database may be corrupted
- Measuring evaluation performance without memoization

Examples:
  # Clear the SQLite memo store (default)
  compscore memo clear

  # Clear a MySQL memo store (set connection string via env variable)
  COMPSCORE_MEMO_BACKEND=mysql COMPSCORE_MEMO_DB_CONNECT="..." compscore memo clear`,
	PreRunE: memoSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearMemo(); err != nil {
			contract.LogFatal("Failed to clear memo store", err)
		}
		fmt.Println("Memo store cleared successfully.")
	},
}

// memoStatusCmd shows memo store status.
var memoStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display memo statistics and connection details",
	Long: `Show detailed information about the memo store.

Displays:
- Backend type and connection status
- Total number of memoized results
- Timestamp of the most recent entry

Examples:
  # Check memo status
  compscore memo status`,
	PreRunE: memoSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Status()
		if err != nil {
			contract.LogFatal("Failed to get memo status", err)
		}
		iocache.PrintMemoStatus(status)
	},
}
