package cmd

import (
	"github.com/lw2die/vitalis/core"
	"github.com/lw2die/vitalis/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd derives and prints metrics without ingesting anything.
var metricsCmd = &cobra.Command{
	Use:   "metrics [input-dir]",
	Short: "Show the derived health metrics from the current cache.",
	Long: `Derive and print the full metric set from the cached records,
without touching the input directory.

Includes:
- Weekly PAI and the CTL/ATL/TSB training load triple
- VO2max (device-measured when available, estimated otherwise)
- Body composition, sleep, resting heart rate, SpO2, steps, blood pressure
- Glucose windows and the glucose management indicator
- Longevity score, healthspan index, alerts and recommendations

Examples:
  # Text report
  vitalis metrics

  # Machine-readable output
  vitalis metrics --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteVitalisMetrics(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot derive metrics", err)
		}
	},
}
