// Package parquet provides data structures and functions for exporting gpugrade
// results and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/gpugrade/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single scoring run with metadata.
// This struct maps to the gpugrade_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	RowsScored int32 `parquet:"rows_scored,snappy"`
	RowsFailed int32 `parquet:"rows_failed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ScoredRow represents the recorded score of one row in a run.
// This struct maps to the gpugrade_scored_rows database table.
type ScoredRow struct {
	RunID             int64     `parquet:"run_id,snappy"`
	RowID             string    `parquet:"row_id,snappy"`
	ScoredAt          time.Time `parquet:"scored_at,snappy"`
	Score             float64   `parquet:"score,snappy"`
	Grade             string    `parquet:"grade,snappy"`
	NormalizationMode string    `parquet:"normalization_mode,snappy"`
}

// RankedRow is one line of the score command's parquet output.
type RankedRow struct {
	Rank              int32   `parquet:"rank,snappy"`
	RowID             string  `parquet:"row_id,snappy"`
	Score             float64 `parquet:"score,snappy"`
	Grade             string  `parquet:"grade,snappy"`
	NormalizationMode string  `parquet:"normalization_mode,snappy"`

	// Breakdown is the JSON-encoded map of weighted terms per attribute
	Breakdown string `parquet:"breakdown,snappy"`
}

// WriteRunsParquet writes runs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteScoredRowsParquet writes recorded scored rows to a Parquet file.
func WriteScoredRowsParquet(data []ScoredRow, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteRankedRows writes ranked rows to w.
func WriteRankedRows(w io.Writer, data []RankedRow) error {
	writer := parquet.NewGenericWriter[RankedRow](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet: %w", err)
	}
	return writer.Close()
}

func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			RowsScored:    record.RowsScored,
			RowsFailed:    record.RowsFailed,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertScoredRowRecords converts schema.ScoredRowRecord to ScoredRow for Parquet export.
func ConvertScoredRowRecords(records []schema.ScoredRowRecord) []ScoredRow {
	result := make([]ScoredRow, len(records))
	for i, record := range records {
		result[i] = ScoredRow(record)
	}
	return result
}

// ConvertRankedRows converts ranked results for Parquet output.
func ConvertRankedRows(rows []schema.EnrichedScoredRow, mode schema.NormalizationMode) ([]RankedRow, error) {
	result := make([]RankedRow, len(rows))
	for i, r := range rows {
		breakdown, err := json.Marshal(r.Breakdown)
		if err != nil {
			return nil, err
		}
		result[i] = RankedRow{
			Rank:              int32(r.Rank),
			RowID:             r.ID,
			Score:             r.Score,
			Grade:             string(r.Grade),
			NormalizationMode: string(mode),
			Breakdown:         string(breakdown),
		}
	}
	return result, nil
}
