package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/recruitready/compscore/core"
	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/internal/iocache"
	"github.com/recruitready/compscore/internal/outwriter"
	"github.com/recruitready/compscore/schema"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

// batchCmd evaluates a roster of profiles concurrently.
var batchCmd = &cobra.Command{
	Use:   "batch <roster.jsonl>",
	Short: "Evaluate a roster of candidate profiles.",
	Long: `Evaluate many candidate profiles in one run against a single snapshot of
the rule configuration.

The roster is a JSON Lines file with one profile object per line. Each
profile's "id" field labels its output row; rows without one are labeled by
line number. A malformed line fails that row only, never the run.

All rows are evaluated against the same config revision even if a new one is
published mid-run.

Examples:
  # Score an applicant pool
  compscore batch roster.jsonl

  # Export results for analytics
  compscore batch roster.jsonl --output parquet --output-file scores.parquet

  # Crank up parallelism for large rosters
  compscore batch roster.jsonl --workers 16`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := runBatch(args[0]); err != nil {
			contract.LogFatal("Cannot run batch evaluation", err)
		}
	},
}

func runBatch(rosterPath string) error {
	lines, err := readRoster(rosterPath)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("roster %q contains no profiles", rosterPath)
	}

	store, err := openConfigStore()
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	// The config is loaded once so every row sees the same revision.
	engineCfg, source, err := core.LoadActiveConfig(rootCtx, cfg, store)
	if err != nil {
		return err
	}

	if cfg.UseEmojis {
		fmt.Printf("🎯 Evaluating %d profile(s) against config %s (%s)\n", len(lines), engineCfg.Version, source)
	}

	start := time.Now()
	rows := evaluateRoster(engineCfg, lines, cfg.Workers)
	duration := time.Since(start)

	return outwriter.NewOutWriter().WriteBatch(rows, cfg, duration)
}

// readRoster loads a JSON Lines roster, skipping blank lines.
func readRoster(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var lines [][]byte
	scanner := bufio.NewScanner(f)
	// Profiles can be large; the default scanner limit is too small.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		owned := make([]byte, len(line))
		copy(owned, line)
		lines = append(lines, owned)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roster %q: %w", path, err)
	}
	return lines, nil
}

// evaluateRoster fans profile lines out to a worker pool and collects results
// in roster order. Workers write to disjoint indexes, so no result lock is
// needed.
func evaluateRoster(engineCfg *schema.CompetitivenessConfig, lines [][]byte, workers int) []schema.BatchRow {
	rows := make([]schema.BatchRow, len(lines))
	indexCh := make(chan int, len(lines))
	var wg sync.WaitGroup

	if workers > len(lines) {
		workers = len(lines)
	}

	mgr := iocache.Manager()
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexCh {
				rows[i] = evaluateRosterLine(engineCfg, lines[i], i, mgr)
			}
		}()
	}

	for i := range lines {
		indexCh <- i
	}
	close(indexCh)
	wg.Wait()

	return rows
}

// evaluateRosterLine scores one roster line, converting any failure into a
// per-row error.
func evaluateRosterLine(engineCfg *schema.CompetitivenessConfig, line []byte, index int, mgr contract.MemoManager) schema.BatchRow {
	row := schema.BatchRow{ProfileID: profileID(line, index)}

	profile, err := schema.NewCandidateProfile(line)
	if err != nil {
		row.Err = err.Error()
		return row
	}

	result, _ := core.MemoizedEvaluate(engineCfg, profile, mgr)
	row.Result = result
	return row
}

// profileID labels a roster row by the profile's "id" field, falling back to
// the 1-based line number.
func profileID(line []byte, index int) string {
	if id := gjson.GetBytes(line, "id"); id.Exists() {
		return id.String()
	}
	return "line-" + strconv.Itoa(index+1)
}
