// Package cmd defines the command-line interface for pulse.
package cmd

import (
	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/oss-pulse/pulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(alertsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(analysisCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("projects", "p", "", "Comma-separated subset of projects to analyze (empty = all)")
	rootCmd.PersistentFlags().String("start", "", "Inclusive start month (YYYY-MM)")
	rootCmd.PersistentFlags().String("end", "", "Inclusive end month (YYYY-MM)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("preset", string(schema.BurnoutPreset), "Analyzer preset: burnout or newcomer or quality")
	rootCmd.PersistentFlags().String("convention", "", "Score convention override: risk or health")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("csv-file", "", "Optional path to write CSV output to")
	rootCmd.PersistentFlags().String("json-file", "", "Optional path to write JSON output to")
	rootCmd.PersistentFlags().String("parquet-file", "", "Output path for parquet mode")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Float64("volatility-threshold", 0, "Coefficient-of-variation threshold override (0 = preset default)")
	rootCmd.PersistentFlags().Int("recent-window", 0, "Recent-change window in months (0 = preset default)")
	rootCmd.PersistentFlags().Float64("fusion-degree", 0, "Degree weight for influence fusion (0 = preset default)")
	rootCmd.PersistentFlags().Float64("fusion-kcore", 0, "K-core weight for influence fusion (0 = preset default)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for analysis tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analysisExportCmd to Viper
	analysisExportCmd.Flags().String("output-file", "", "Base path for exported Parquet files")
	if err := viper.BindPFlags(analysisExportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis export flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
