package cmd

import (
	"github.com/huangsam/gpugrade/core"
	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd scores and ranks every row of a dataset.
var scoreCmd = &cobra.Command{
	Use:   "score <dataset>",
	Short: "Score and grade every GPU offer in a dataset",
	Long: `Normalize every attribute of every row, combine them into a weighted score
and assign a letter grade. Rows are printed from best to worst.

Datasets can be csv, json (array of objects), xlsx or parquet. Every configured
attribute must be a column; rows with missing, unknown or out-of-range values are
reported and skipped (or abort the run with --on-error abort).

Examples:
  # Rank offers with the built-in attributes and weights
  gpugrade score offers.csv

  # Show why each offer scored the way it did
  gpugrade score offers.csv --explain --detail

  # Derive numeric bounds from the dataset instead of the config
  gpugrade score offers.xlsx --sheet Python_Data --normalization batch

  # Keep offers priced above the configured range instead of rejecting them
  gpugrade score offers.json --bounds clamp --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openHistory()
		err := core.ExecuteScore(rootCtx, cfg, core.NewExecutor(cfg, store))
		closeHistory(store)
		if err != nil {
			contract.LogFatal("Scoring failed", err)
		}
	},
}
