package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/recruitready/compscore/core"
	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/schema"
	"github.com/spf13/cobra"
)

// validateCmd checks a rule configuration without publishing it.
var validateCmd = &cobra.Command{
	Use:   "validate <config.json>",
	Short: "Validate a rule configuration and report every violation.",
	Long: `Check a rule configuration document against the schema invariants.

All violations are reported in one pass, not just the first, so an
administrator can fix the whole document in a single edit. Non-fatal lints,
such as a cap on a non-repeatable rule, are listed separately.

Exits non-zero when the document has violations.

Examples:
  # Validate a draft before publishing
  compscore validate draft.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := runValidate(args[0]); err != nil {
			contract.LogFatal("Config is invalid", err)
		}
	},
}

func runValidate(configPath string) error {
	doc, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config %q: %w", configPath, err)
	}

	var parsed schema.CompetitivenessConfig
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return fmt.Errorf("document is not valid config JSON: %w", err)
	}
	report := core.ValidateConfig(&parsed, cfg.MaxRules)

	for _, lint := range report.Lints {
		contract.LogWarning(lint.String())
	}
	if err := report.Err(); err != nil {
		return err
	}

	fmt.Println("Config is valid.")
	return nil
}
