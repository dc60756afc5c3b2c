package cmd

import (
	"github.com/oss-pulse/pulse/core"
	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/spf13/cobra"
)

// alertsCmd lists detected regression alerts across projects.
var alertsCmd = &cobra.Command{
	Use:   "alerts [graphs-dir]",
	Short: "List discrete regression alerts across all projects.",
	Long: `Run the analysis and print every detected regression alert.

Alerts fire on month-over-month regressions:
- ACTIVITY_DROP        activity fell sharply from the previous month
- CONTRIBUTOR_DROP     contributor count fell sharply
- CORE_MEMBER_LOSS     core contributors left the core team
- COLLABORATION_DECLINE collaboration density fell sharply
- SUSTAINED_DECLINE    a dimension declined for several consecutive months

High-severity alerts are the strongest signals; use them for triage.

Examples:
  # All alerts across all projects
  pulse alerts ./graphs

  # Alerts for a project subset
  pulse alerts ./graphs --projects kubernetes,prometheus

  # Export alerts for tracking
  pulse alerts ./graphs --output csv --csv-file alerts.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseAlerts(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run alert listing", err)
		}
	},
}
