package cmd

import (
	"github.com/lw2die/vitalis/core"
	"github.com/lw2die/vitalis/internal/contract"
	"github.com/spf13/cobra"
)

// timeseriesCmd derives and prints the per-day chart series.
var timeseriesCmd = &cobra.Command{
	Use:   "timeseries [input-dir]",
	Short: "Show per-day weekly PAI and training load trends.",
	Long: `Derive and print the per-day chart series over the trailing window.

For each day the report shows the rolling weekly PAI and the CTL/ATL/TSB
training load triple. The final day always matches the headline numbers
of the metrics report.

Examples:
  # Last 30 days (default)
  vitalis timeseries

  # Last quarter as CSV
  vitalis timeseries --chart-days 90 --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteVitalisTimeseries(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot derive timeseries", err)
		}
	},
}
