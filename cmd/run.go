package cmd

import (
	"github.com/lw2die/vitalis/core"
	"github.com/lw2die/vitalis/internal/contract"
	"github.com/spf13/cobra"
)

// runCmd performs a full processing cycle.
var runCmd = &cobra.Command{
	Use:   "run [input-dir]",
	Short: "Ingest new snapshot exports and print the metric report.",
	Long: `Run one full processing cycle over the input directory.

The cycle:
- Finds snapshot exports not yet ingested (by file name)
- Applies record deletions, then extracts every category into the cache
- Deduplicates exercise sessions re-sent by full exports
- Persists the cache atomically and archives the ingested files
- Derives the full metric set and prints the report

Snapshots that fail to parse are skipped and left in place for the next
cycle; they never abort the batch.

Examples:
  # Process the current directory
  vitalis run

  # Process a watched export folder
  vitalis run ~/health/exports

  # Process and export the report as JSON
  vitalis run --output json --output-file report.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteVitalisRun(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run processing cycle", err)
		}
	},
}
