// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/oss-pulse/pulse/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints the cross-project summary using the configured output format.
func (ow *OutWriter) WriteSummary(rows []schema.SummaryRow, cfg *contract.Config, duration time.Duration) error {
	return WriteSummaryResults(rows, cfg, duration)
}

// WriteReport prints one project's longitudinal report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.ProjectReport, cfg *contract.Config, duration time.Duration) error {
	return WriteProjectReport(report, cfg, duration)
}

// WriteAlerts prints alert listings using the configured output format.
func (ow *OutWriter) WriteAlerts(alerts []schema.Alert, cfg *contract.Config, duration time.Duration) error {
	return WriteAlertResults(alerts, cfg, duration)
}

// WriteMetrics prints the preset and dimension definitions.
func (ow *OutWriter) WriteMetrics(cfg *contract.Config) error {
	return WriteMetricsDefinitions(cfg)
}

// GetMaxTableNameWidth calculates the maximum width for project names in
// table output based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (Rank + Score + Level + Months +
	// Alerts + High) with borders and padding.
	baseWidth := 50

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable name width
		return 15
	}
	if available > 60 {
		// Maximum name width to prevent overly wide tables
		return 60
	}
	return available
}
