// Package parquet provides data structures and functions for exporting batch
// evaluation results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/recruitready/compscore/schema"
)

// EvaluationRecord represents one evaluated profile in a batch run.
type EvaluationRecord struct {
	// ProfileID identifies the candidate profile within the roster
	ProfileID string `parquet:"profile_id,snappy"`

	// ConfigVersion is the version label of the rule configuration used
	ConfigVersion string `parquet:"config_version,snappy"`

	// EvaluatedAt is when the batch run produced this row
	EvaluatedAt time.Time `parquet:"evaluated_at,snappy"`

	// TotalScore is the summed category points after caps and clamps
	TotalScore float64 `parquet:"total_score,snappy"`

	// TotalMaxPoints is the sum of category maximums
	TotalMaxPoints float64 `parquet:"total_max_points,snappy"`

	// TotalPercent is the normalized score on the 0-100 scale
	TotalPercent float64 `parquet:"total_percent,snappy"`

	// Level is the mapped competitiveness level label
	Level string `parquet:"level,snappy"`

	// Disqualified reports whether a hard-stop condition fired
	Disqualified bool `parquet:"disqualified,snappy"`

	// WarningCount is the number of non-fatal warnings emitted
	WarningCount int32 `parquet:"warning_count,snappy"`

	// Error holds the failure message for rows that could not be
	// evaluated (nullable)
	Error *string `parquet:"error,optional,snappy"`
}

// CategoryRecord represents one category breakdown row in a batch run.
type CategoryRecord struct {
	// ProfileID identifies the candidate profile within the roster
	ProfileID string `parquet:"profile_id,snappy"`

	// ConfigVersion is the version label of the rule configuration used
	ConfigVersion string `parquet:"config_version,snappy"`

	// CategoryKey is the stable key of the scoring category
	CategoryKey string `parquet:"category_key,snappy"`

	// Points is the clamped points earned in this category
	Points float64 `parquet:"points,snappy"`

	// MaxPoints is the category ceiling
	MaxPoints float64 `parquet:"max_points,snappy"`

	// Percent is Points relative to MaxPoints on the 0-100 scale
	Percent float64 `parquet:"percent,snappy"`
}

// WriteEvaluationRecordsParquet writes a slice of EvaluationRecord structs to
// a Parquet file.
func WriteEvaluationRecordsParquet(data []EvaluationRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the EvaluationRecord struct tags
	writer := parquet.NewGenericWriter[EvaluationRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteCategoryRecordsParquet writes a slice of CategoryRecord structs to a
// Parquet file.
func WriteCategoryRecordsParquet(data []CategoryRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[CategoryRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertBatchRows converts schema.BatchRow values into flat EvaluationRecord
// rows for Parquet export. Rows that failed carry an Error and zero scores.
func ConvertBatchRows(rows []schema.BatchRow, evaluatedAt time.Time) []EvaluationRecord {
	result := make([]EvaluationRecord, len(rows))
	for i, row := range rows {
		rec := EvaluationRecord{
			ProfileID:   row.ProfileID,
			EvaluatedAt: evaluatedAt,
		}
		if row.Err != "" {
			msg := row.Err
			rec.Error = &msg
		}
		if row.Result != nil {
			rec.ConfigVersion = row.Result.Version
			rec.TotalScore = row.Result.TotalScore
			rec.TotalMaxPoints = row.Result.TotalMaxPoints
			rec.TotalPercent = row.Result.TotalPercent
			rec.Level = row.Result.Level
			rec.Disqualified = row.Result.Disqualified
			rec.WarningCount = int32(len(row.Result.Warnings))
		}
		result[i] = rec
	}
	return result
}

// ConvertCategoryRows expands schema.BatchRow values into one CategoryRecord
// per category breakdown entry. Failed rows contribute nothing.
func ConvertCategoryRows(rows []schema.BatchRow) []CategoryRecord {
	var result []CategoryRecord
	for _, row := range rows {
		if row.Result == nil {
			continue
		}
		keys := make([]string, 0, len(row.Result.CategoryScores))
		for key := range row.Result.CategoryScores {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			score := row.Result.CategoryScores[key]
			result = append(result, CategoryRecord{
				ProfileID:     row.ProfileID,
				ConfigVersion: row.Result.Version,
				CategoryKey:   key,
				Points:        score.Points,
				MaxPoints:     score.MaxPoints,
				Percent:       score.Percent,
			})
		}
	}
	return result
}
