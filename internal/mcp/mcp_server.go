// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/oss-pulse/pulse/internal/contract"
)

// NewMCPServer initializes and configures the Pulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Pulse Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_project ---
	s.AddTool(mcp.NewTool("analyze_project",
		mcp.WithDescription("Compute the longitudinal health report for one project from monthly collaboration graph snapshots."),
		mcp.WithString("project", mcp.Description("Project identifier, e.g. 'acme/widgets'."), mcp.Required()),
		mcp.WithString("graphs_dir", mcp.Description("Root directory of monthly snapshot files (defaults to the configured directory).")),
		mcp.WithString("preset", mcp.Description("Analyzer preset (burnout, newcomer, quality). Defaults to 'burnout'."), mcp.Enum("burnout", "newcomer", "quality")),
		mcp.WithString("start", mcp.Description("Inclusive start month in YYYY-MM format.")),
		mcp.WithString("end", mcp.Description("Inclusive end month in YYYY-MM format.")),
	), h.handleAnalyzeProject)

	// --- 2. Tool: get_summary ---
	s.AddTool(mcp.NewTool("get_summary",
		mcp.WithDescription("Rank all analyzed projects by composite score with alert counts."),
		mcp.WithString("graphs_dir", mcp.Description("Root directory of monthly snapshot files.")),
		mcp.WithString("preset", mcp.Description("Analyzer preset (burnout, newcomer, quality)."), mcp.Enum("burnout", "newcomer", "quality")),
		mcp.WithString("projects", mcp.Description("Comma-separated subset of projects to analyze (defaults to all).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetSummary)

	// --- 3. Tool: list_alerts ---
	s.AddTool(mcp.NewTool("list_alerts",
		mcp.WithDescription("List discrete regression alerts detected across projects and months."),
		mcp.WithString("graphs_dir", mcp.Description("Root directory of monthly snapshot files.")),
		mcp.WithString("project", mcp.Description("Restrict alerts to one project.")),
		mcp.WithString("severity", mcp.Description("Restrict alerts to one severity."), mcp.Enum("high", "medium")),
		mcp.WithString("preset", mcp.Description("Analyzer preset (burnout, newcomer, quality)."), mcp.Enum("burnout", "newcomer", "quality")),
	), h.handleListAlerts)

	return s
}

// StartMCPServer starts the Pulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
