package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/oss-pulse/pulse/schema"
)

// Risk label constants.
const (
	HighValue    = "High"    // High risk
	MediumValue  = "Medium"  // Medium risk
	LowValue     = "Low"     // Low risk
	MinimalValue = "Minimal" // Minimal risk
)

// Color variables for console output.
var (
	HighColor    = color.New(color.FgRed, color.Bold)    // highColor represents standard danger.
	MediumColor  = color.New(color.FgMagenta, color.Bold) // mediumColor represents strong, distinct warning.
	LowColor     = color.New(color.FgYellow)              // lowColor represents standard caution, not bold.
	MinimalColor = color.New(color.FgCyan)                // minimalColor represents informational signal.
)

// GetPlainLabel returns a plain text label for a risk level. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(level schema.RiskLevel) string {
	switch level {
	case schema.HighRisk:
		return HighValue
	case schema.MediumRisk:
		return MediumValue
	case schema.LowRisk:
		return LowValue
	default:
		return MinimalValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(level schema.RiskLevel) string {
	text := GetPlainLabel(level)

	switch text {
	case HighValue:
		return HighColor.Sprint(text)
	case MediumValue:
		return MediumColor.Sprint(text)
	case LowValue:
		return LowColor.Sprint(text)
	default: // "Minimal"
		return MinimalColor.Sprint(text)
	}
}

// GetSeverityLabel returns a colored label for an alert severity.
func GetSeverityLabel(sev schema.Severity) string {
	if sev == schema.HighSeverity {
		return HighColor.Sprint("high")
	}
	return LowColor.Sprint("medium")
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It returns os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file for cache storage.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pulse_cache.db"
	}
	return filepath.Join(homeDir, ".pulse_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pulse_analysis.db"
	}
	return filepath.Join(homeDir, ".pulse_analysis.db")
}

// TruncateName truncates a project name to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for both the "..." prefix and at
// least one character of content.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return name
}

// SplitProjects parses a comma-separated project list, trimming whitespace
// and dropping empty entries. Returns nil for an empty input.
func SplitProjects(s string) []string {
	var projects []string
	for p := range strings.SplitSeq(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			projects = append(projects, p)
		}
	}
	return projects
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
