package cmd

import (
	"github.com/lw2die/vitalis/core"
	"github.com/lw2die/vitalis/internal/contract"
	"github.com/spf13/cobra"
)

// healthspanCmd derives and prints the healthspan report.
var healthspanCmd = &cobra.Command{
	Use:   "healthspan [input-dir]",
	Short: "Show the healthspan index and its sub-scores.",
	Long: `Derive and print the healthspan composite from the cached records.

The index weighs five dimensions (fitness, body, recovery, metabolic,
functional), each banded 0-100 from the metrics it owns. When a lab panel
is configured, the four lab sub-scores and their longevity composite are
included.

Weights are configurable via the 'weights' block of the config file and
must sum to 1.0.

Examples:
  # Text report
  vitalis healthspan

  # Export for a dashboard
  vitalis healthspan --output json --output-file healthspan.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteVitalisHealthspan(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot derive healthspan", err)
		}
	},
}
