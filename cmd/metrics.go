package cmd

import (
	"github.com/oss-pulse/pulse/core"
	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of all scoring presets.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display formulas and definitions for all scoring presets",
	Long: `Show the formal definitions, dimensions, and weights for all scoring presets.

Provides complete transparency into how projects are scored, including:
- Preset purpose and score convention (risk vs health)
- Dimension names, directions, and maximum scores
- Saturation constants for the trend, recent, and volatility layers
- The fusion and dimension formulas

No snapshot analysis is performed - this is purely informational.

Examples:
  # Show scoring definitions
  pulse metrics

  # Machine-readable definitions
  pulse metrics --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePulseMetrics(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
