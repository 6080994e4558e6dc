// Package cmd defines the command-line interface for vitalis.
package cmd

import (
	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(healthspanCmd)
	rootCmd.AddCommand(timeseriesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Int("age", contract.DefaultAge, "Subject age in years")
	rootCmd.PersistentFlags().Int("height-cm", contract.DefaultHeightCm, "Subject height in centimeters")
	rootCmd.PersistentFlags().Float64("resting-hr", contract.DefaultRestingHR, "Resting heart rate in bpm")
	rootCmd.PersistentFlags().Float64("max-hr", 0, "Max heart rate in bpm (0 = 220 - age)")
	rootCmd.PersistentFlags().Float64("target-weight", contract.DefaultTargetWeightKg, "Target weight in kilograms")
	rootCmd.PersistentFlags().Float64("pai-target", contract.DefaultWeeklyPAITarget, "Weekly PAI target")
	rootCmd.PersistentFlags().Float64("sleep-target", contract.DefaultSleepTargetHours, "Nightly sleep target in hours")
	rootCmd.PersistentFlags().Int("chart-days", contract.DefaultChartDays, "Number of trailing days in chart series")
	rootCmd.PersistentFlags().String("input-dir", "", "Directory holding snapshot exports (defaults to current directory)")
	rootCmd.PersistentFlags().String("cache-file", "", "Path to the health cache file (defaults to input-dir/"+contract.DefaultCacheFileName+")")
	rootCmd.PersistentFlags().String("archive-dir", contract.DefaultArchiveDirName, "Directory name for ingested snapshots, relative to input-dir")
	rootCmd.PersistentFlags().String("file-prefix", contract.DefaultFilePrefix, "Snapshot file name prefix")
	rootCmd.PersistentFlags().String("file-ext", contract.DefaultFileExt, "Snapshot file extension")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in text output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
