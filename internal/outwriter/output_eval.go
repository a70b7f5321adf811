package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/schema"
)

// WriteEvaluation prints a single evaluation result, dispatching on the
// configured output format. Thresholds are passed alongside so level labels
// can be colored by severity.
func (ow *OutWriter) WriteEvaluation(result *schema.EvaluationResult, thresholds []schema.Threshold, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported for batch runs")
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEvaluationJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeEvaluationCSV(csvWriter, result, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEvaluationTable(w, result, thresholds, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeEvaluationJSON emits the full result document, warnings included.
func writeEvaluationJSON(w io.Writer, result *schema.EvaluationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// writeEvaluationCSV emits one row per category plus a total row.
func writeEvaluationCSV(w *csv.Writer, result *schema.EvaluationResult, fmtFloat func(float64) string) error {
	if err := w.Write([]string{"category", "points", "max_points", "percent"}); err != nil {
		return err
	}
	for _, key := range sortedCategoryKeys(result) {
		s := result.CategoryScores[key]
		row := []string{key, fmtFloat(s.Points), fmtFloat(s.MaxPoints), fmtFloat(s.Percent)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	total := []string{"TOTAL", fmtFloat(result.TotalScore), fmtFloat(result.TotalMaxPoints), fmtFloat(result.TotalPercent)}
	return w.Write(total)
}

// writeEvaluationTable renders the human-readable breakdown.
func writeEvaluationTable(w io.Writer, result *schema.EvaluationResult, thresholds []schema.Threshold, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Points", "Max", "Percent"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	labelWidth := maxTableLabelWidth(cfg)
	var data [][]string
	for _, key := range sortedCategoryKeys(result) {
		s := result.CategoryScores[key]
		data = append(data, []string{
			contract.TruncateLabel(key, labelWidth),
			fmtFloat(s.Points),
			fmtFloat(s.MaxPoints),
			fmtFloat(s.Percent),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	level := result.Level
	if cfg.UseColors {
		level = contract.GetColorLevel(result.Level, thresholds)
	}
	if _, err := fmt.Fprintf(w, "Overall: %s/%s (%s%%)\n",
		fmtFloat(result.TotalScore), fmtFloat(result.TotalMaxPoints), fmtFloat(result.TotalPercent)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Level: %s\n", level); err != nil {
		return err
	}
	if result.Disqualified {
		if _, err := fmt.Fprintf(w, "Disqualified: level forced by %d hard-stop condition(s)\n", len(result.Disqualifiers)); err != nil {
			return err
		}
	}

	if cfg.Explain && len(result.Warnings) > 0 {
		if _, err := fmt.Fprintf(w, "Warnings (%d):\n", len(result.Warnings)); err != nil {
			return err
		}
		for _, warn := range result.Warnings {
			if _, err := fmt.Fprintf(w, "  [%s] %s: %s\n", warn.Kind, warn.Var, warn.Detail); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "Evaluated config %s in %v\n", result.Version, duration)
	return err
}

// sortedCategoryKeys returns category keys in lexicographic order so table
// and CSV output are stable across runs.
func sortedCategoryKeys(result *schema.EvaluationResult) []string {
	keys := make([]string, 0, len(result.CategoryScores))
	for key := range result.CategoryScores {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
