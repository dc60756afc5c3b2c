package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/oss-pulse/pulse/core"
	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/oss-pulse/pulse/internal/graphio"
	"github.com/oss-pulse/pulse/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// applyOverrides clones the base configuration and applies the per-request
// parameters shared by all tools.
func (h *toolHandler) applyOverrides(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("graphs_dir", ""); d != "" {
		cfg.GraphsDir = d
	}
	if p := request.GetString("preset", ""); p != "" {
		scoring, err := schema.PresetConfig(schema.AnalyzerPreset(p))
		if err != nil {
			return nil, err
		}
		cfg.Scoring = scoring
	}
	if s := request.GetString("start", ""); s != "" {
		m, err := schema.ParseMonth(s)
		if err != nil {
			return nil, err
		}
		cfg.StartMonth = m
	}
	if e := request.GetString("end", ""); e != "" {
		m, err := schema.ParseMonth(e)
		if err != nil {
			return nil, err
		}
		cfg.EndMonth = m
	}
	if cfg.StartMonth != "" && cfg.EndMonth != "" && cfg.StartMonth > cfg.EndMonth {
		return nil, fmt.Errorf("start month (%s) cannot be after end month (%s)", cfg.StartMonth, cfg.EndMonth)
	}
	return cfg, nil
}

func (h *toolHandler) handleAnalyzeProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project := request.GetString("project", "")
	if project == "" {
		return mcp.NewToolResultError("project is required"), nil
	}

	cfg, err := h.applyOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid analysis parameters: %v", err)), nil
	}

	src, err := graphio.NewFSGraphSource(cfg.GraphsDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot open graphs directory: %v", err)), nil
	}

	report, err := core.AnalyzeProject(ctx, src, cfg, project)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid analysis parameters: %v", err)), nil
	}
	if p := request.GetString("projects", ""); p != "" {
		cfg.Projects = contract.SplitProjects(p)
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	src, err := graphio.NewFSGraphSource(cfg.GraphsDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot open graphs directory: %v", err)), nil
	}

	reports, err := core.AnalyzeProjects(ctx, src, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	rows := core.Summarize(reports, cfg)
	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListAlerts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid analysis parameters: %v", err)), nil
	}
	if p := request.GetString("project", ""); p != "" {
		cfg.Projects = []string{p}
	}
	severity := schema.Severity(request.GetString("severity", ""))

	src, err := graphio.NewFSGraphSource(cfg.GraphsDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot open graphs directory: %v", err)), nil
	}

	reports, err := core.AnalyzeProjects(ctx, src, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	var alerts []schema.Alert
	for _, r := range reports {
		for _, a := range r.Alerts {
			if severity != "" && a.Severity != severity {
				continue
			}
			alerts = append(alerts, a)
		}
	}
	schema.SortAlerts(alerts)

	output := struct {
		Count  int            `json:"count"`
		Alerts []schema.Alert `json:"alerts"`
	}{Count: len(alerts), Alerts: alerts}
	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
