package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/recruitready/compscore/core"
	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/internal/iocache"
	"github.com/recruitready/compscore/internal/outwriter"
	"github.com/recruitready/compscore/schema"
	"github.com/spf13/cobra"
)

// evaluateCmd scores one candidate profile against the active rule config.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate <profile.json>",
	Short: "Evaluate a candidate profile against the active rule configuration.",
	Long: `Evaluate a candidate profile and print the per-category breakdown, total
score, percentage, and the mapped readiness level.

The rule configuration is resolved in order:
1. A local file given via --engine-config
2. The latest published revision in the config store
3. The built-in default rule set

Examples:
  # Evaluate against the published config
  compscore evaluate candidate.json

  # Evaluate against a local draft and show warnings
  compscore evaluate candidate.json --engine-config draft.json --explain

  # Export the full result document
  compscore evaluate candidate.json --output json --output-file result.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := runEvaluate(args[0]); err != nil {
			contract.LogFatal("Cannot evaluate profile", err)
		}
	},
}

func runEvaluate(profilePath string) error {
	doc, err := os.ReadFile(profilePath)
	if err != nil {
		return fmt.Errorf("failed to read profile %q: %w", profilePath, err)
	}
	profile, err := schema.NewCandidateProfile(doc)
	if err != nil {
		return err
	}

	store, err := openConfigStore()
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	engineCfg, source, err := core.LoadActiveConfig(rootCtx, cfg, store)
	if err != nil {
		return err
	}

	if cfg.UseEmojis {
		fmt.Printf("🎯 Evaluating %s against config %s (%s)\n", profilePath, engineCfg.Version, source)
	}

	start := time.Now()
	result, _ := core.MemoizedEvaluate(engineCfg, profile, iocache.Manager())
	duration := time.Since(start)

	return outwriter.NewOutWriter().WriteEvaluation(result, engineCfg.Thresholds, cfg, duration)
}
