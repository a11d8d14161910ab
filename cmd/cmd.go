// Package cmd defines the command-line interface for gpugrade.
package cmd

import (
	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(attributesCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	configCmd.AddCommand(configInitCmd)

	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("format", "", "Dataset format: csv or json or xlsx or parquet (default: from extension)")
	rootCmd.PersistentFlags().String("id-column", contract.DefaultIDColumn, "Column holding the row identifier")
	rootCmd.PersistentFlags().String("sheet", "", "Worksheet to read from xlsx datasets (default: first sheet)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of ranked rows to display (0 = all)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("bounds", string(schema.StrictBounds), "Out-of-range numeric values: strict or clamp or extrapolate")
	rootCmd.PersistentFlags().String("on-error", string(schema.SkipFailures), "Invalid rows: skip or abort")
	rootCmd.PersistentFlags().String("normalization", string(schema.StaticNormalization), "Numeric bounds: static (configured) or batch (from the dataset)")
	rootCmd.PersistentFlags().Float64("scale", contract.DefaultScale, "Multiplier applied to the weighted sum")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql run history")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics for the run to this textfile")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Diagnostic log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored grades in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output (yes/no/true/false/1/0)")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scoreCmd to Viper
	scoreCmd.Flags().Bool("detail", false, "Print the normalized value of every attribute")
	scoreCmd.Flags().Bool("explain", false, "Print the top contributing attributes of every row")
	if err := viper.BindPFlags(scoreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding score flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().String("min-grade", string(schema.GradeC), "Lowest grade that passes the check")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 = latest, 0 = roll back everything)")
}
