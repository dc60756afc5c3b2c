package cmd

import (
	"github.com/oss-pulse/pulse/core"
	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd performs the cross-project summary analysis.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [graphs-dir]",
	Short: "Rank projects by composite health score.",
	Long: `Analyze monthly collaboration-graph snapshots and rank projects by composite score.

For every project, Pulse identifies the monthly core contributors, extracts
metric series across the analyzed months, scores each dimension on trend,
recent change, and volatility, and fuses them into a single composite score.

Scores follow the preset's convention:
- burnout and newcomer presets report risk (higher = worse)
- quality preset reports health (higher = better)

Examples:
  # Rank all projects under ./graphs with the burnout preset
  pulse analyze ./graphs

  # Score newcomer friction over a fixed window
  pulse analyze ./graphs --preset newcomer --start 2023-01 --end 2023-12

  # Export findings to CSV for tracking
  pulse analyze ./graphs --output csv --csv-file summary.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseSummary(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}
