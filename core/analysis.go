package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/oss-pulse/pulse/schema"
)

// ErrNoProjects is returned when the source has no project matching the filter.
var ErrNoProjects = errors.New("no projects found")

// AnalyzeProject runs the full longitudinal pipeline for a single project:
// timeline assembly, core member identification, series extraction, scoring,
// alert detection, and composite aggregation.
//
// The timeline is calendar-expanded: months between the first and last
// available snapshot that have no snapshot of their own become gap samples.
// Gaps are excluded from every downstream computation rather than read as
// zero activity.
func AnalyzeProject(ctx context.Context, src contract.GraphSource, cfg *contract.Config, project string) (*schema.ProjectReport, error) {
	available, err := src.Months(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("listing months for %s: %w", project, err)
	}

	months := make([]schema.Month, 0, len(available))
	for _, m := range available {
		if cfg.InMonthRange(m) {
			months = append(months, m)
		}
	}
	schema.SortMonths(months)

	report := &schema.ProjectReport{
		Project: project,
		Preset:  cfg.Scoring.Preset,
		Records: []schema.MonthlyRecord{},
		Alerts:  []schema.Alert{},
		Factors: map[string]schema.DimensionFactor{},
	}
	if len(months) == 0 {
		report.Composite = Compose(map[string]schema.DimensionScore{}, &cfg.Scoring)
		return report, nil
	}

	inputs, err := buildTimeline(ctx, src, cfg, project, months)
	if err != nil {
		return nil, err
	}

	series := ExtractSeries(inputs, &cfg.Scoring)
	dimensions := make(map[string]schema.DimensionScore, len(cfg.Scoring.Dimensions))
	for _, spec := range cfg.Scoring.Dimensions {
		dimensions[spec.Name] = ScoreSeries(series[spec.Name], spec, cfg.Scoring.RecentWindow, cfg.Scoring.VolatilityThreshold)
	}

	alerts := DetectAlerts(project, inputs, series, cfg.Scoring.Alerts)

	report.MonthsAnalyzed = len(months)
	report.Period = fmt.Sprintf("%s..%s", months[0], months[len(months)-1])
	report.Records = buildRecords(inputs, series, alerts)
	report.Alerts = alerts
	report.Factors = buildFactors(cfg.Scoring.Dimensions, series, dimensions)
	report.Composite = Compose(dimensions, &cfg.Scoring)
	return report, nil
}

// buildTimeline loads every available snapshot, identifies its core member
// set, and expands the result over the full calendar range. Months the
// source cannot load are demoted to gaps with a warning rather than failing
// the whole project.
func buildTimeline(ctx context.Context, src contract.GraphSource, cfg *contract.Config, project string, months []schema.Month) ([]MonthInput, error) {
	loaded := make(map[schema.Month]MonthInput, len(months))
	for _, m := range months {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap, err := src.Load(ctx, project, m)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s %s", project, m), err)
			continue
		}
		loaded[m] = MonthInput{
			Month:    m,
			Snapshot: snap,
			Core:     IdentifyCoreMembers(snap, &cfg.Scoring),
		}
	}
	if len(loaded) == 0 {
		return nil, fmt.Errorf("no loadable snapshots for %s", project)
	}

	inputs := make([]MonthInput, 0, len(months))
	for _, m := range schema.MonthRange(months[0], months[len(months)-1]) {
		if in, ok := loaded[m]; ok {
			inputs = append(inputs, in)
		} else {
			inputs = append(inputs, MonthInput{Month: m})
		}
	}
	return inputs, nil
}

// buildRecords assembles the per-month output rows from the extracted series,
// attaching each alert to the month it fired in.
func buildRecords(inputs []MonthInput, series map[string]*schema.MetricSeries, alerts []schema.Alert) []schema.MonthlyRecord {
	byMonth := make(map[schema.Month][]schema.Alert)
	for _, a := range alerts {
		byMonth[a.Month] = append(byMonth[a.Month], a)
	}

	records := make([]schema.MonthlyRecord, 0, len(inputs))
	for i, in := range inputs {
		if in.Snapshot == nil {
			continue
		}
		rec := schema.MonthlyRecord{
			Month:      in.Month,
			Dimensions: make(map[string]float64, len(series)),
			Alerts:     byMonth[in.Month],
		}
		if in.Core != nil {
			rec.CoreSize = in.Core.Size()
		}
		for name, s := range series {
			if sample := s.Samples[i]; sample.Valid {
				rec.Dimensions[name] = sample.Value
			}
		}
		records = append(records, rec)
	}
	return records
}

// buildFactors pairs each dimension's latest observed value with its score
// for the summary output.
func buildFactors(specs []schema.DimensionSpec, series map[string]*schema.MetricSeries, dimensions map[string]schema.DimensionScore) map[string]schema.DimensionFactor {
	factors := make(map[string]schema.DimensionFactor, len(specs))
	for _, spec := range specs {
		factor := schema.DimensionFactor{
			Score:  dimensions[spec.Name],
			Weight: spec.MaxScore,
		}
		if s := series[spec.Name]; s != nil {
			for i := len(s.Samples) - 1; i >= 0; i-- {
				if s.Samples[i].Valid {
					factor.Value = s.Samples[i].Value
					break
				}
			}
		}
		factors[spec.Name] = factor
	}
	return factors
}

// AnalyzeProjects fans the per-project pipeline out over a bounded worker
// pool and returns the reports in deterministic project order. One failing
// project fails the run.
func AnalyzeProjects(ctx context.Context, src contract.GraphSource, cfg *contract.Config, mgr contract.CacheManager) ([]*schema.ProjectReport, error) {
	projects, err := src.Projects(ctx)
	if err != nil {
		return nil, err
	}
	wanted := make([]string, 0, len(projects))
	for _, p := range projects {
		if cfg.WantsProject(p) {
			wanted = append(wanted, p)
		}
	}
	if len(wanted) == 0 {
		return nil, ErrNoProjects
	}

	// --- 0. Begin Analysis Tracking (if configured) ---
	var analysisID int64
	analysisStore := mgr.GetAnalysisStore()
	if analysisStore != nil {
		configParams := map[string]any{
			"preset":     string(cfg.Scoring.Preset),
			"convention": string(cfg.Scoring.Convention),
			"graphs_dir": cfg.GraphsDir,
			"workers":    cfg.Workers,
			"projects":   len(wanted),
		}
		var err error
		analysisID, err = analysisStore.BeginAnalysis(time.Now(), configParams)
		if err != nil {
			contract.LogWarn("Analysis tracking initialization failed", err)
		}
	}

	// --- 1. Fan out per-project analysis ---
	reports := make([]*schema.ProjectReport, len(wanted))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, project := range wanted {
		g.Go(func() error {
			report, err := cachedAnalyzeProject(gctx, src, cfg, mgr, project)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// --- 2. Record outcomes and finalize tracking ---
	if analysisStore != nil && analysisID > 0 {
		for _, r := range reports {
			rec := schema.ProjectScoreRecord{
				AnalysisID:     analysisID,
				Project:        r.Project,
				Preset:         string(r.Preset),
				AnalysisTime:   time.Now(),
				MonthsAnalyzed: int32(r.MonthsAnalyzed),
				Score:          r.Composite.Total,
				RiskLevel:      string(r.Composite.Level),
				AlertCount:     int32(len(r.Alerts)),
				HighAlerts:     int32(countHighAlerts(r.Alerts)),
			}
			if err := analysisStore.RecordProjectScore(analysisID, rec); err != nil {
				contract.LogWarn("Failed to record project score", err)
			}
		}
		if err := analysisStore.EndAnalysis(analysisID, time.Now(), len(reports)); err != nil {
			contract.LogWarn("Failed to finalize analysis tracking", err)
		}
	}

	return reports, nil
}

// Summarize flattens project reports into summary rows, sorted worst first
// under the configured convention.
func Summarize(reports []*schema.ProjectReport, cfg *contract.Config) []schema.SummaryRow {
	rows := make([]schema.SummaryRow, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, schema.SummaryRow{
			Project:        r.Project,
			Score:          r.Composite.Total,
			Level:          r.Composite.Level,
			MonthsAnalyzed: r.MonthsAnalyzed,
			AlertCount:     len(r.Alerts),
			HighAlerts:     countHighAlerts(r.Alerts),
		})
	}
	schema.SortSummary(rows, cfg.Scoring.Convention)
	if len(rows) > cfg.ResultLimit {
		rows = rows[:cfg.ResultLimit]
	}
	return rows
}

func countHighAlerts(alerts []schema.Alert) int {
	n := 0
	for _, a := range alerts {
		if a.Severity == schema.HighSeverity {
			n++
		}
	}
	return n
}
