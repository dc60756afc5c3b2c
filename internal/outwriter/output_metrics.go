package outwriter

import (
	"fmt"
	"io"

	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/oss-pulse/pulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// presetPurposes are the one-line descriptions shown by the metrics command.
var presetPurposes = map[schema.AnalyzerPreset]string{
	schema.BurnoutPreset:  "Maintainer burnout risk - shrinking activity and core attrition",
	schema.NewcomerPreset: "Newcomer friction - rising distance between newcomers and the core",
	schema.QualityPreset:  "Community quality - overall health on the inverted scale",
}

// WriteMetricsDefinitions outputs the preset and dimension definitions,
// dispatching based on the output format configured.
func WriteMetricsDefinitions(cfg *contract.Config) error {
	model, err := buildMetricsRenderModel()
	if err != nil {
		return err
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.JSONFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON metrics")
	case schema.CSVOut, schema.ParquetOut:
		return fmt.Errorf("metrics definitions support text and json output only")
	default:
		return writeWithFile("", func(w io.Writer) error {
			return writeMetricsTable(model, cfg, w)
		}, "Wrote table")
	}
}

// buildMetricsRenderModel constructs the complete render model from the
// built-in presets.
func buildMetricsRenderModel() (*schema.MetricsRenderModel, error) {
	presets := make([]schema.MetricsPreset, 0, len(schema.AllAnalyzerPresets))

	for _, name := range schema.AllAnalyzerPresets {
		sc, err := schema.PresetConfig(name)
		if err != nil {
			return nil, err
		}

		dims := make([]schema.MetricsDimension, len(sc.Dimensions))
		for i, d := range sc.Dimensions {
			dims[i] = schema.MetricsDimension{
				Name:      d.Name,
				Direction: string(d.Direction),
				MaxScore:  d.MaxScore,
				KTrend:    d.KTrend,
				KRecent:   d.KRecent,
				KVol:      d.KVol,
			}
		}

		presets = append(presets, schema.MetricsPreset{
			Name:       string(name),
			Purpose:    presetPurposes[name],
			Convention: string(sc.Convention),
			Fusion:     sc.Fusion,
			Dimensions: dims,
			Formula: fmt.Sprintf("fused = %.2f*degree + %.2f*kcore; dimension = %.2f*trend + %.2f*recent + %.2f*volatility",
				sc.Fusion.Degree, sc.Fusion.KCore,
				schema.TrendShare, schema.RecentShare, schema.VolatilityShare),
		})
	}

	return &schema.MetricsRenderModel{
		Title:       "Pulse Scoring Presets",
		Description: "All dimension scores = three-layer decomposition of a monthly metric series",
		LayerShares: fmt.Sprintf("trend %.0f%% / recent %.0f%% / volatility %.0f%% of each dimension budget",
			schema.TrendShare*100, schema.RecentShare*100, schema.VolatilityShare*100),
		Presets: presets,
	}, nil
}

// writeMetricsTable prints one table per preset plus the shared header lines.
func writeMetricsTable(model *schema.MetricsRenderModel, cfg *contract.Config, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "%s\n%s\n%s\n\n", model.Title, model.Description, model.LayerShares); err != nil {
		return err
	}

	fmtFloat, _ := createFormatters(cfg.Precision)

	for _, preset := range model.Presets {
		if _, err := fmt.Fprintf(writer, "%s (%s convention): %s\n", preset.Name, preset.Convention, preset.Purpose); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(writer, "  %s\n", preset.Formula); err != nil {
			return err
		}

		table := tablewriter.NewWriter(writer)
		table.Header([]string{"Dimension", "Direction", "Max", "K_trend", "K_recent", "K_vol"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, d := range preset.Dimensions {
			data = append(data, []string{
				d.Name,
				d.Direction,
				fmtFloat(d.MaxScore),
				fmtFloat(d.KTrend),
				fmtFloat(d.KRecent),
				fmtFloat(d.KVol),
			})
		}

		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(writer); err != nil {
			return err
		}
	}
	return nil
}
