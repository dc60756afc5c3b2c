package cmd

import (
	"github.com/oss-pulse/pulse/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Pulse MCP server",
	Long:  `Launch an MCP server that allows AI agents to perform health analysis via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The protocol owns stdio, so setup must not print to stdout.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
