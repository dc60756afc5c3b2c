package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/oss-pulse/pulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteProjectReport outputs one project's longitudinal report, dispatching
// based on the output format configured.
func WriteProjectReport(report *schema.ProjectReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeReportJSONResults(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeReportCSVResults(report, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for project reports; use the summary output or the cache export command")
	default:
		return writeWithFile("", func(w io.Writer) error {
			return writeReportTable(report, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeReportJSONResults handles opening the file and calling the JSON writer.
func writeReportJSONResults(report *schema.ProjectReport, cfg *contract.Config) error {
	return writeWithFile(cfg.JSONFile, func(w io.Writer) error {
		return writeJSON(w, report)
	}, "Wrote JSON report")
}

// writeReportCSVResults handles opening the file and calling the CSV writer.
func writeReportCSVResults(report *schema.ProjectReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.CSVFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForReport(csvWriter, report, cfg, fmtFloat, intFmt)
	}, "Wrote CSV report")
}

// writeReportTable generates and writes the human-readable report: one row
// per analyzed month, followed by the per-dimension factors and the
// composite score.
func writeReportTable(report *schema.ProjectReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	dims := cfg.Scoring.Dimensions

	if _, err := fmt.Fprintf(writer, "Project %s (%s preset, period %s)\n", report.Project, report.Preset, report.Period); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)

	headers := []string{"Month"}
	for _, d := range dims {
		headers = append(headers, d.Name)
	}
	headers = append(headers, "Core", "Alerts")
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, rec := range report.Records {
		row := []string{string(rec.Month)}
		for _, d := range dims {
			row = append(row, fmtFloat(rec.Dimensions[d.Name]))
		}
		row = append(row,
			fmt.Sprintf(intFmt, rec.CoreSize),
			fmt.Sprintf(intFmt, len(rec.Alerts)),
		)
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Per-dimension factor lines with the three-layer decomposition.
	for _, d := range dims {
		factor, ok := report.Factors[d.Name]
		if !ok {
			continue
		}
		s := factor.Score
		if _, err := fmt.Fprintf(writer, "%s: %s/%s (trend %s, recent %s, volatility %s; latest %s)\n",
			d.Name,
			fmtFloat(s.Total), fmtFloat(factor.Weight),
			fmtFloat(s.TrendScore), fmtFloat(s.RecentScore), fmtFloat(s.VolatilityScore),
			fmtFloat(factor.Value)); err != nil {
			return err
		}
	}

	scoreName := "risk"
	if report.Composite.Convention == schema.HealthConvention {
		scoreName = "health"
	}
	if _, err := fmt.Fprintf(writer, "Composite %s score: %s (%s) with %d alerts over %d months\n",
		scoreName,
		fmtFloat(report.Composite.Total),
		contract.GetColorLabel(report.Composite.Level),
		len(report.Alerts),
		report.MonthsAnalyzed); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForReport writes one row per analyzed month.
func writeCSVResultsForReport(w *csv.Writer, report *schema.ProjectReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	dims := cfg.Scoring.Dimensions

	header := []string{"project", "month"}
	for _, d := range dims {
		header = append(header, d.Name)
	}
	header = append(header, "core_size", "alert_count", "score", "level")
	if err := w.Write(header); err != nil {
		return err
	}

	for _, rec := range report.Records {
		row := []string{report.Project, string(rec.Month)}
		for _, d := range dims {
			row = append(row, fmtFloat(rec.Dimensions[d.Name]))
		}
		row = append(row,
			fmt.Sprintf(intFmt, rec.CoreSize),
			strconv.Itoa(len(rec.Alerts)),
			fmtFloat(report.Composite.Total),
			contract.GetPlainLabel(report.Composite.Level),
		)
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
