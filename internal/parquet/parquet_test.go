package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/recruitready/compscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRows mixes a scored row and a failed row.
func sampleRows() []schema.BatchRow {
	return []schema.BatchRow{
		{
			ProfileID: "cand-1",
			Result: &schema.EvaluationResult{
				Version: "builtin-1",
				CategoryScores: map[string]schema.CategoryScore{
					"work":      {Key: "work", Points: 20, MaxPoints: 25, Percent: 80},
					"education": {Key: "education", Points: 10, MaxPoints: 20, Percent: 50},
				},
				TotalScore:     30,
				TotalMaxPoints: 45,
				TotalPercent:   66.7,
				Level:          "promising",
				Warnings: []schema.EvalWarning{
					{Kind: schema.WarnUnresolvedPath, Var: "certs", Detail: "path not found in profile"},
				},
			},
		},
		{ProfileID: "line-2", Err: "profile must be a JSON object"},
	}
}

func TestConvertBatchRows(t *testing.T) {
	evaluatedAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	records := ConvertBatchRows(sampleRows(), evaluatedAt)
	require.Len(t, records, 2)

	scored := records[0]
	assert.Equal(t, "cand-1", scored.ProfileID)
	assert.Equal(t, "builtin-1", scored.ConfigVersion)
	assert.Equal(t, evaluatedAt, scored.EvaluatedAt)
	assert.InDelta(t, 30.0, scored.TotalScore, 0.0001)
	assert.Equal(t, "promising", scored.Level)
	assert.Equal(t, int32(1), scored.WarningCount)
	assert.Nil(t, scored.Error)

	failed := records[1]
	assert.Equal(t, "line-2", failed.ProfileID)
	require.NotNil(t, failed.Error)
	assert.Equal(t, "profile must be a JSON object", *failed.Error)
	assert.Zero(t, failed.TotalScore)
}

func TestConvertCategoryRows(t *testing.T) {
	records := ConvertCategoryRows(sampleRows())

	// One row per category, failed profiles contribute nothing.
	require.Len(t, records, 2)
	assert.Equal(t, "education", records[0].CategoryKey)
	assert.Equal(t, "work", records[1].CategoryKey)
	assert.Equal(t, "cand-1", records[0].ProfileID)
	assert.InDelta(t, 80.0, records[1].Percent, 0.0001)
}

func TestWriteEvaluationRecordsParquetRoundTrip(t *testing.T) {
	records := ConvertBatchRows(sampleRows(), time.Now().UTC())
	path := filepath.Join(t.TempDir(), "batch.parquet")

	require.NoError(t, WriteEvaluationRecordsParquet(records, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	require.NoError(t, err)

	reader := parquet.NewGenericReader[EvaluationRecord](file)
	defer func() { _ = reader.Close() }()
	require.EqualValues(t, 2, reader.NumRows())
	assert.Positive(t, info.Size())

	read := make([]EvaluationRecord, 2)
	n, err := reader.Read(read)
	if err != nil {
		require.ErrorIs(t, err, io.EOF)
	}
	require.Equal(t, 2, n)
	assert.Equal(t, "cand-1", read[0].ProfileID)
	assert.Equal(t, "line-2", read[1].ProfileID)
}

func TestWriteCategoryRecordsParquet(t *testing.T) {
	records := ConvertCategoryRows(sampleRows())
	path := filepath.Join(t.TempDir(), "categories.parquet")

	require.NoError(t, WriteCategoryRecordsParquet(records, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[CategoryRecord](file)
	defer func() { _ = reader.Close() }()
	assert.EqualValues(t, 2, reader.NumRows())
}

func TestWriteEvaluationRecordsParquetBadPath(t *testing.T) {
	err := WriteEvaluationRecordsParquet(nil, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}
