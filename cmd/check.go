package cmd

import (
	"github.com/huangsam/gpugrade/core"
	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check <dataset>",
	Short: "Fail when any offer grades below a minimum (for CI pipelines)",
	Long: `Score a dataset and exit with a non-zero code when any row grades below
--min-grade or cannot be scored at all.

Examples:
  # Every offer in the catalog must be at least a C
  gpugrade check catalog.csv

  # Stricter gate with machine readable output
  gpugrade check catalog.csv --min-grade B --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := openHistory()
		err := core.ExecuteCheck(rootCtx, cfg, core.NewExecutor(cfg, store))
		closeHistory(store)
		if err != nil {
			contract.LogFatal("Grade check failed", err)
		}
	},
}
