package cmd

import (
	"github.com/oss-pulse/pulse/core"
	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/spf13/cobra"
)

// reportProject holds the positional project argument for the report command.
var reportProject string

// reportCmd prints the longitudinal report for one project.
var reportCmd = &cobra.Command{
	Use:   "report <project> [graphs-dir]",
	Short: "Show one project's month-by-month health report.",
	Long: `Print the full longitudinal report for a single project.

Shows the per-month dimension values, core team size, and detected alerts,
followed by the three-layer decomposition of each dimension (trend, recent
change, volatility) and the final composite score.

Examples:
  # Full report with the default burnout preset
  pulse report kubernetes ./graphs

  # Health-oriented report for a fixed window
  pulse report kubernetes ./graphs --preset quality --start 2023-01

  # Machine-readable report
  pulse report kubernetes ./graphs --output json`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		reportProject = args[0]
		return sharedSetup(rootCtx, cmd, args[1:])
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseReport(rootCtx, cfg, cacheManager, reportProject); err != nil {
			contract.LogFatal("Cannot run project report", err)
		}
	},
}
