package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/internal/parquet"
	"github.com/recruitready/compscore/schema"
)

// WriteBatch prints the results of a batch run. Parquet output requires an
// output file; the other formats follow the same stdout-or-file convention as
// single evaluations.
func (ow *OutWriter) WriteBatch(rows []schema.BatchRow, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		records := parquet.ConvertBatchRows(rows, time.Now().UTC())
		if err := parquet.WriteEvaluationRecordsParquet(records, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Printf("Wrote parquet to %s\n", cfg.OutputFile)
		return nil
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeBatchCSV(csvWriter, rows, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchTable(w, rows, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeBatchCSV emits one row per profile.
func writeBatchCSV(w *csv.Writer, rows []schema.BatchRow, fmtFloat func(float64) string) error {
	header := []string{"profile_id", "version", "total_score", "total_max_points", "total_percent", "level", "disqualified", "warnings", "error"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := batchRecord(row, fmtFloat)
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// batchRecord flattens a BatchRow into CSV fields. Failed rows keep their
// position with empty score columns so roster order survives in the output.
func batchRecord(row schema.BatchRow, fmtFloat func(float64) string) []string {
	if row.Result == nil {
		return []string{row.ProfileID, "", "", "", "", "", "", "", row.Err}
	}
	r := row.Result
	return []string{
		row.ProfileID,
		r.Version,
		fmtFloat(r.TotalScore),
		fmtFloat(r.TotalMaxPoints),
		fmtFloat(r.TotalPercent),
		r.Level,
		fmt.Sprintf("%t", r.Disqualified),
		fmt.Sprintf("%d", len(r.Warnings)),
		row.Err,
	}
}

// writeBatchTable renders the human-readable roster summary.
func writeBatchTable(w io.Writer, rows []schema.BatchRow, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Profile", "Score", "Percent", "Level", "DQ", "Error"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	labelWidth := maxTableLabelWidth(cfg)
	failed := 0
	var data [][]string
	for _, row := range rows {
		if row.Result == nil {
			failed++
			data = append(data, []string{contract.TruncateLabel(row.ProfileID, labelWidth), "", "", "", "", row.Err})
			continue
		}
		r := row.Result
		dq := ""
		if r.Disqualified {
			dq = "yes"
		}
		data = append(data, []string{
			contract.TruncateLabel(row.ProfileID, labelWidth),
			fmtFloat(r.TotalScore),
			fmtFloat(r.TotalPercent),
			r.Level,
			dq,
			"",
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Evaluated %d profile(s), %d failed, in %v\n", len(rows), failed, duration)
	return err
}
