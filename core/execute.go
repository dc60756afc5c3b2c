package core

import (
	"context"
	"time"

	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/oss-pulse/pulse/internal/graphio"
	"github.com/oss-pulse/pulse/internal/outwriter"
	"github.com/oss-pulse/pulse/schema"
)

// ExecutePulseSummary runs the cross-project analysis and prints the ranked
// summary. It serves as the main entry point for the 'analyze' command.
func ExecutePulseSummary(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	src, err := graphio.NewFSGraphSource(cfg.GraphsDir)
	if err != nil {
		return err
	}
	reports, err := AnalyzeProjects(ctx, src, cfg, mgr)
	if err != nil {
		return err
	}
	rows := Summarize(reports, cfg)
	duration := time.Since(start)
	return outwriter.WriteSummaryResults(rows, cfg, duration)
}

// ExecutePulseReport runs the analysis for one project and prints its
// longitudinal report. It serves as the main entry point for the 'report'
// command.
func ExecutePulseReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, project string) error {
	start := time.Now()
	src, err := graphio.NewFSGraphSource(cfg.GraphsDir)
	if err != nil {
		return err
	}
	report, err := AnalyzeProject(ctx, src, cfg, project)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteProjectReport(report, cfg, duration)
}

// ExecutePulseAlerts runs the cross-project analysis and prints the flattened
// alert listing. It serves as the main entry point for the 'alerts' command.
func ExecutePulseAlerts(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	src, err := graphio.NewFSGraphSource(cfg.GraphsDir)
	if err != nil {
		return err
	}
	reports, err := AnalyzeProjects(ctx, src, cfg, mgr)
	if err != nil {
		return err
	}
	var alerts []schema.Alert
	for _, r := range reports {
		alerts = append(alerts, r.Alerts...)
	}
	schema.SortAlerts(alerts)
	duration := time.Since(start)
	return outwriter.WriteAlertResults(alerts, cfg, duration)
}

// ExecutePulseMetrics prints the preset and dimension definitions.
func ExecutePulseMetrics(_ context.Context, cfg *contract.Config) error {
	return outwriter.WriteMetricsDefinitions(cfg)
}
