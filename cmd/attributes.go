package cmd

import (
	"github.com/huangsam/gpugrade/core"
	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/spf13/cobra"
)

// attributesCmd shows the active scoring configuration.
var attributesCmd = &cobra.Command{
	Use:   "attributes",
	Short: "Show the active attributes, weights, formula and grade table",
	Long: `Display how rows will be scored: every attribute with its kind, domain and
weight, the composite formula, the score range it can produce and the grade table.

The attribute set comes from the attributes list of the config file, or the
built-in GPU offer attributes when there is none. The weights map overrides
individual weights.

Examples:
  gpugrade attributes
  gpugrade attributes --config team.yaml --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAttributes(cfg, core.NewExecutor(cfg, nil)); err != nil {
			contract.LogFatal("Invalid scoring configuration", err)
		}
	},
}
