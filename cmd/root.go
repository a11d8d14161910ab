package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/internal/history"
	"github.com/huangsam/gpugrade/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// configName is the base name of the config file searched in . and $HOME.
const configName = ".gpugrade"

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "gpugrade",
	Short: "Score GPU cloud offers on price and hardware, then grade them A to F.",
	Long: `gpugrade normalizes every hardware attribute of a GPU offer onto [0,1],
combines them into a weighted composite score and maps the score to a letter grade.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigSource()

	viper.SetEnvPrefix("GPUGRADE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("id-column", contract.DefaultIDColumn)
	viper.SetDefault("bounds", schema.StrictBounds)
	viper.SetDefault("on-error", schema.SkipFailures)
	viper.SetDefault("normalization", schema.StaticNormalization)
	viper.SetDefault("scale", contract.DefaultScale)
	viper.SetDefault("history-backend", schema.NoneBackend)
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("color", "yes")
	viper.SetDefault("emoji", "no")
}

// setConfigSource points viper at --config or the default search path.
func setConfigSource() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// loadConfigFile reads the config file if there is one.
func loadConfigFile() error {
	setConfigSource()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.DatasetPathStr = args[0]
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	return contract.InitLogger(cfg.LogLevel)
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// openHistory opens the configured run history store. Failing to connect only
// disables tracking for this run.
func openHistory() contract.HistoryStore {
	if cfg.HistoryBackend == schema.NoneBackend {
		return nil
	}
	store, err := history.NewHistoryStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		contract.LogWarn("Run history disabled", err)
		return nil
	}
	return store
}

// closeHistory closes a store returned by openHistory.
func closeHistory(store contract.HistoryStore) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		contract.LogWarn("Failed to close run history", err)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
