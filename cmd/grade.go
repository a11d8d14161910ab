package cmd

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/huangsam/gpugrade/core"
	"github.com/spf13/cobra"
)

// gradeCmd maps raw scores to grades.
var gradeCmd = &cobra.Command{
	Use:   "grade <score>...",
	Short: "Print the letter grade of one or more scores",
	Long: `Map composite scores to letter grades: A >= 90, B >= 80, C >= 70, D >= 60,
anything else is F.

Flags are not parsed, so negative scores can be passed directly.

Examples:
  gpugrade grade 85.2
  gpugrade grade 59.9 60 90
  gpugrade grade -5`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || slices.Contains(args, "-h") || slices.Contains(args, "--help") {
			return cmd.Help()
		}
		for _, arg := range args {
			score, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return fmt.Errorf("invalid score %q: %w", arg, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", arg, core.ScoreToGrade(score))
		}
		return nil
	},
}
