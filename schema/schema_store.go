package schema

import "time"

// RunRecord represents a row from the gpugrade_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	RowsScored    int32
	RowsFailed    int32
	ConfigParams  *string
}

// ScoredRowRecord represents a row from the gpugrade_scored_rows table.
type ScoredRowRecord struct {
	RunID             int64
	RowID             string
	ScoredAt          time.Time
	Score             float64
	Grade             string
	NormalizationMode string
}
