package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/internal/iocache"
	"github.com/lw2die/vitalis/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Resolve the cache file path the same way full setup does
	inputDir := viper.GetString("input-dir")
	if inputDir == "" {
		inputDir = "."
	}
	cacheFile := viper.GetString("cache-file")
	if cacheFile == "" {
		cacheFile = filepath.Join(inputDir, contract.DefaultCacheFileName)
	}

	// Initialize stores with the loaded config (no run history for cache commands)
	if err := iocache.InitStores(cacheFile, schema.NoneBackend, ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.InputDir = inputDir
	cfg.CacheFile = cacheFile

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by processing commands. This avoids profile
// validation and history setup for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the persisted health-record cache",
	Long: `Manage the JSON document that holds every extracted health record.

The cache is the single source of truth for derived metrics: snapshots are
ingested into it once, then every report recomputes from it.

Subcommands:
  status - Show record counts and file info
  clear  - Remove the cache file

Examples:
  # Check cache status
  vitalis cache status

  # Start over from scratch
  vitalis cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the persisted health-record cache file",
	Long: `Delete the health-record cache file.

WARNING: Already-archived snapshots are not re-ingested automatically;
move them back into the input directory to rebuild the cache.

Use this when:
- The cache is corrupted
- Profile parameters changed in a way that invalidates derived values
- Testing ingestion from a clean slate

Examples:
  # Clear the default cache
  vitalis cache clear

  # Clear a specific cache file
  vitalis cache clear --cache-file ~/health/health_cache.json`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCacheFile(cfg.CacheFile); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache record counts and file details",
	Long: `Show detailed information about the health-record cache.

Displays:
- Cache file location and size
- Last update timestamp
- Processed snapshot count
- Record counts per category

Examples:
  # Check cache status
  vitalis cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetCacheStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
