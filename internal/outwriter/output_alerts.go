package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/oss-pulse/pulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAlertResults outputs the alert listing, dispatching based on the
// output format configured. Alerts are expected pre-sorted by severity then
// month.
func WriteAlertResults(alerts []schema.Alert, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeAlertsJSONResults(alerts, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeAlertsCSVResults(alerts, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for alert listings; use the summary output or the cache export command")
	default:
		return writeWithFile("", func(w io.Writer) error {
			return writeAlertsTable(alerts, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeAlertsJSONResults handles opening the file and calling the JSON writer.
func writeAlertsJSONResults(alerts []schema.Alert, cfg *contract.Config) error {
	return writeWithFile(cfg.JSONFile, func(w io.Writer) error {
		output := struct {
			Count  int            `json:"count"`
			Alerts []schema.Alert `json:"alerts"`
		}{
			Count:  len(alerts),
			Alerts: alerts,
		}
		return writeJSON(w, output)
	}, "Wrote JSON alerts")
}

// writeAlertsCSVResults handles opening the file and calling the CSV writer.
func writeAlertsCSVResults(alerts []schema.Alert, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.CSVFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForAlerts(csvWriter, alerts, fmtFloat)
	}, "Wrote CSV alerts")
}

// writeAlertsTable generates and writes the human-readable table.
func writeAlertsTable(alerts []schema.Alert, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Project", "Month", "Type", "Severity", "Magnitude", "Detail"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, a := range alerts {
		row := []string{
			contract.TruncateName(a.Project, GetMaxTableNameWidth(cfg)),
			string(a.Month),
			string(a.Type),
			contract.GetSeverityLabel(a.Severity),
			fmtFloat(a.Magnitude),
			a.Detail,
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	highCount := 0
	for _, a := range alerts {
		if a.Severity == schema.HighSeverity {
			highCount++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing %d alerts (%d high severity)\n", len(alerts), highCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForAlerts writes the alert listing in CSV format.
func writeCSVResultsForAlerts(w *csv.Writer, alerts []schema.Alert, fmtFloat func(float64) string) error {
	header := []string{
		"project",
		"month",
		"type",
		"severity",
		"magnitude",
		"detail",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, a := range alerts {
		rec := []string{
			a.Project,
			string(a.Month),
			string(a.Type),
			string(a.Severity),
			fmtFloat(a.Magnitude),
			a.Detail,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
