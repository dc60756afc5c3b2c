package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/oss-pulse/pulse/internal/parquet"
	"github.com/oss-pulse/pulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSummaryResults outputs the cross-project summary, dispatching based on
// the output format configured.
func WriteSummaryResults(rows []schema.SummaryRow, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeSummaryJSONResults(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSummaryCSVResults(rows, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteSummaryParquet(parquet.ConvertSummaryRows(rows), cfg.ParquetFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Printf("Exported %d summary rows to: %s\n", len(rows), cfg.ParquetFile)
	default:
		// Default to human-readable table
		return writeWithFile("", func(w io.Writer) error {
			return writeSummaryTable(rows, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryJSONResults handles opening the file and calling the JSON writer.
func writeSummaryJSONResults(rows []schema.SummaryRow, cfg *contract.Config) error {
	return writeWithFile(cfg.JSONFile, func(w io.Writer) error {
		return writeJSONResultsForSummary(w, rows)
	}, "Wrote JSON summary")
}

// writeSummaryCSVResults handles opening the file and calling the CSV writer.
func writeSummaryCSVResults(rows []schema.SummaryRow, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.CSVFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForSummary(csvWriter, rows, fmtFloat, intFmt)
	}, "Wrote CSV summary")
}

// writeSummaryTable generates and writes the human-readable table.
func writeSummaryTable(rows []schema.SummaryRow, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Project", "Score", "Level", "Months", "Alerts", "High"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, r := range rows {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(r.Project, GetMaxTableNameWidth(cfg)),
			fmtFloat(r.Score),
			contract.GetColorLabel(r.Level),
			fmt.Sprintf(intFmt, r.MonthsAnalyzed),
			fmt.Sprintf(intFmt, r.AlertCount),
			fmt.Sprintf(intFmt, r.HighAlerts),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	totalAlerts := 0
	totalHigh := 0
	for _, r := range rows {
		totalAlerts += r.AlertCount
		totalHigh += r.HighAlerts
	}
	if _, err := fmt.Fprintf(writer, "Showing %d projects (total alerts: %d, high severity: %d)\n", len(rows), totalAlerts, totalHigh); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForSummary writes the summary in CSV format.
func writeCSVResultsForSummary(w *csv.Writer, rows []schema.SummaryRow, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"project",
		"score",
		"level",
		"months_analyzed",
		"alert_count",
		"high_alerts",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, r := range rows {
		rec := []string{
			strconv.Itoa(i + 1),
			r.Project,
			fmtFloat(r.Score),
			contract.GetPlainLabel(r.Level),
			fmt.Sprintf(intFmt, r.MonthsAnalyzed),
			fmt.Sprintf(intFmt, r.AlertCount),
			fmt.Sprintf(intFmt, r.HighAlerts),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForSummary writes the summary in JSON format.
func writeJSONResultsForSummary(w io.Writer, rows []schema.SummaryRow) error {
	// Prepare the data structure for JSON with rank and label added
	type JSONSummaryRow struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.SummaryRow
	}

	output := make([]JSONSummaryRow, len(rows))
	for i, r := range rows {
		output[i] = JSONSummaryRow{
			Rank:       i + 1,
			Label:      contract.GetPlainLabel(r.Level),
			SummaryRow: r,
		}
	}

	return writeJSON(w, output)
}
