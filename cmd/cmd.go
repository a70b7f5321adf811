// Package cmd defines the command-line interface for compscore.
package cmd

import (
	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(memoCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the config subcommands to the parent config command
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configHistoryCmd)
	configCmd.AddCommand(configSetCmd)

	// Add the memo subcommands to the parent memo command
	memoCmd.AddCommand(memoClearCmd)
	memoCmd.AddCommand(memoStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config-key", contract.DefaultConfigKey, "Config store key holding the active rule set")
	rootCmd.PersistentFlags().String("engine-config", "", "Path to a local rule-set file (bypasses the config store)")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Bool("explain", false, "Print evaluation warnings alongside results")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers for batch runs")
	rootCmd.PersistentFlags().Int("max-rules", contract.DefaultMaxRules, "Maximum total rule count a config may carry")
	rootCmd.PersistentFlags().String("memo-backend", string(schema.SQLiteBackend), "Memo backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("memo-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Config store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for the config store (must differ from memo-db-connect)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("editor", "", "Identifier of the administrator publishing config changes")
	rootCmd.PersistentFlags().String("note", "", "Free-form note recorded with a published revision")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of configHistoryCmd to Viper
	configHistoryCmd.Flags().Int("limit", 20, "Number of revisions to display")
	if err := viper.BindPFlags(configHistoryCmd.Flags()); err != nil {
		contract.LogFatal("Error binding config history flags", err)
	}
}
