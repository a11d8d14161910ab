package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/internal/parquet"
)

// Export suffixes appended to the --output-file prefix.
const (
	RunsFileSuffix       = ".runs.parquet"
	ScoredRowsFileSuffix = ".scored_rows.parquet"
)

// Export writes the runs and scored rows of store to two Parquet files named
// after outputFile and reports progress to w.
func Export(store contract.HistoryStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	scored, err := store.GetAllScoredRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve scored rows: %w", err)
	}

	runsFile := outputFile + RunsFileSuffix
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runs), runsFile)

	rowsFile := outputFile + ScoredRowsFileSuffix
	if err := parquet.WriteScoredRowsParquet(parquet.ConvertScoredRowRecords(scored), rowsFile); err != nil {
		return fmt.Errorf("failed to write scored rows: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d scored rows to: %s\n", len(scored), rowsFile)
	return nil
}
