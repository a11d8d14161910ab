package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/spf13/cobra"
)

// configCmd groups config file helpers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the gpugrade config file",
}

// configInitCmd writes the built-in configuration to a YAML file.
var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the built-in attributes and weights to a config file",
	Long: `Write the default configuration to .gpugrade.yaml (or the given path) as a
starting point for custom attributes and weights.

Examples:
  gpugrade config init
  gpugrade config init team.yaml --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configName + ".yaml"
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating config file: %w", err)
		}
		if err := contract.WriteFileConfig(f, contract.DefaultFileConfig()); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
		return nil
	},
}
