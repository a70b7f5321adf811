package cmd

import (
	"fmt"
	"os"

	"github.com/recruitready/compscore/internal/contract"
	"github.com/spf13/cobra"
)

// publishCmd publishes a validated rule configuration to the config store.
var publishCmd = &cobra.Command{
	Use:   "publish <config.json>",
	Short: "Validate and publish a rule configuration as a new revision.",
	Long: `Publish a rule configuration to the config store under the configured key.

The document is validated first; an invalid document is rejected with every
violation listed and the previous revision stays active. The swap is atomic:
evaluations either see the old revision in full or the new one in full.

Examples:
  # Publish a reviewed rule change
  compscore publish rules-v4.json --editor alice --note "raise education weight"

  # Publish under a non-default key
  compscore publish rules-pilot.json --config-key pilot-program`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := runPublish(args[0]); err != nil {
			contract.LogFatal("Cannot publish config", err)
		}
	},
}

func runPublish(configPath string) error {
	doc, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config %q: %w", configPath, err)
	}

	store, err := requireConfigStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rev, err := store.UpdateContent(rootCtx, cfg.ConfigKey, string(doc), cfg.EditorID, cfg.Note)
	if err != nil {
		return err
	}

	if cfg.UseEmojis {
		fmt.Printf("✅ Published revision %s for key %q\n", rev.ID, rev.Key)
	} else {
		fmt.Printf("Published revision %s for key %q\n", rev.ID, rev.Key)
	}
	return nil
}
