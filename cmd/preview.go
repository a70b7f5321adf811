package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/recruitready/compscore/core"
	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/internal/outwriter"
	"github.com/recruitready/compscore/schema"
	"github.com/spf13/cobra"
)

// previewCmd evaluates a profile against a draft config without publishing it.
var previewCmd = &cobra.Command{
	Use:   "preview <config.json> <profile.json>",
	Short: "Evaluate a profile against a draft rule configuration.",
	Long: `Run an evaluation against an unpublished rule configuration so an
administrator can see the effect of a change before it goes live.

The draft must pass full validation; previews never touch the config store,
the memo layer, or any live evaluation.

Examples:
  # See how a draft scores a sample candidate
  compscore preview draft.json candidate.json

  # Include warnings to debug rule paths
  compscore preview draft.json candidate.json --explain`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := runPreview(args[0], args[1]); err != nil {
			contract.LogFatal("Cannot preview config", err)
		}
	},
}

func runPreview(configPath, profilePath string) error {
	configDoc, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config %q: %w", configPath, err)
	}
	engineCfg, _, err := core.ParseConfig(configDoc)
	if err != nil {
		return err
	}

	profileDoc, err := os.ReadFile(profilePath)
	if err != nil {
		return fmt.Errorf("failed to read profile %q: %w", profilePath, err)
	}
	profile, err := schema.NewCandidateProfile(profileDoc)
	if err != nil {
		return err
	}

	if cfg.UseEmojis {
		fmt.Printf("🔍 Previewing draft %s against %s\n", engineCfg.Version, profilePath)
	}

	start := time.Now()
	result := core.Evaluate(engineCfg, profile)
	duration := time.Since(start)

	return outwriter.NewOutWriter().WriteEvaluation(result, engineCfg.Thresholds, cfg, duration)
}
