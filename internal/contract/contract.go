// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/gpugrade/schema"
)

// RowLoader reads a dataset into raw rows.
// This allows scoring to be tested without files on disk.
type RowLoader interface {
	Load(ctx context.Context, source string) ([]schema.Row, error)
}

// HistoryStore defines the interface for tracking scoring runs and their results.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// RecordScoredRows stores the score and grade of every scored row of a run
	RecordScoredRows(runID int64, mode schema.NormalizationMode, rows []schema.ScoredRow) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, rowsScored, rowsFailed int) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllScoredRows returns every recorded scored row
	GetAllScoredRows() ([]schema.ScoredRowRecord, error)

	// Clear removes all recorded runs and rows
	Clear() error

	// Close closes the underlying connection
	Close() error
}

// ResultWriter renders scoring results in the configured output format.
// This allows the core to be tested without writing to stdout.
type ResultWriter interface {
	WriteScores(result schema.RunResult, cfg *Config, duration time.Duration) error
	WriteCheck(result *schema.CheckResult, cfg *Config, duration time.Duration) error
	WriteAttributes(model *schema.AttributesRenderModel, cfg *Config) error
}
