package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/internal/history"
	"github.com/huangsam/gpugrade/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads the minimal configuration needed for history operations.
// It skips dataset and attribute processing.
func historySetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return contract.InitLogger(viper.GetString("log-level"))
}

// withHistory opens the configured store for the duration of fn.
func withHistory(fn func(contract.HistoryStore) error) error {
	store, err := history.NewHistoryStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the history of scoring runs",
	Long: `When --history-backend is set, every score and check run is recorded with its
configuration, duration and the score and grade of every row.

Supported backends: sqlite (~/.gpugrade_history.db by default), mysql, postgresql
or none (disabled, the default).

Examples:
  gpugrade history status --history-backend sqlite
  gpugrade history export --history-backend sqlite --output-file runs`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display run history statistics and connection details",
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		err := withHistory(func(store contract.HistoryStore) error {
			status, err := store.GetStatus()
			if err != nil {
				return err
			}
			history.PrintStatus(os.Stdout, status)
			return nil
		})
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
	},
}

// historyExportCmd exports run history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet files",
	Long: `Write two Parquet files next to --output-file: <prefix>.runs.parquet with one
row per run and <prefix>.scored_rows.parquet with one row per scored offer.

Examples:
  gpugrade history export --history-backend sqlite --output-file runs
  duckdb -c "SELECT grade, count(*) FROM 'runs.scored_rows.parquet' GROUP BY grade"`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		err := withHistory(func(store contract.HistoryStore) error {
			return history.Export(store, cfg.OutputFile, os.Stdout)
		})
		if err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Remove all recorded runs",
	Long:    `Delete every recorded run and scored row. This cannot be undone; export first if needed.`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := withHistory(func(store contract.HistoryStore) error { return store.Clear() }); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage the schema version of the run history database.

Examples:
  # Migrate to the latest version (default)
  gpugrade history migrate --history-backend sqlite

  # Roll back everything
  gpugrade history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historySetup,
	Run: func(cmd *cobra.Command, _ []string) {
		target, _ := cmd.Flags().GetInt("target-version")
		if err := history.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, target, os.Stdout); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
