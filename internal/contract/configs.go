package contract

import (
	"fmt"
	"maps"
	"strings"

	"github.com/oss-pulse/pulse/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 20
	MaxResultLimit     = 1000
	DefaultWorkers     = 4
	DefaultPrecision   = 1
)

// Config holds the validated runtime configuration for an analysis run.
// Fields requiring complex parsing (months, project lists, scoring
// overrides) are populated by ProcessAndValidate from the raw input.
type Config struct {
	GraphsDir   string         // Root directory of monthly snapshot files (positional arg)
	Projects    []string       // Optional subset of projects to analyze (empty = all)
	StartMonth  schema.Month   // Inclusive lower month bound (zero = no bound)
	EndMonth    schema.Month   // Inclusive upper month bound (zero = no bound)
	ResultLimit int            // Maximum number of projects to show in results
	Workers     int            // Number of concurrent project workers
	Precision   int            // Decimal precision for numeric columns (1 or 2)
	Output      schema.OutputMode
	CSVFile     string // Optional path to write CSV output directly
	JSONFile    string // Optional path to write JSON output directly
	ParquetFile string // Output path for parquet mode (required for parquet)
	Width       int    // Terminal width override for table output

	Scoring schema.ScoringConfig // Fully resolved scoring configuration

	CacheBackend      schema.DatabaseBackend
	CacheDBConnect    string
	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ConfigRawInput holds the raw inputs from all sources (file, env, flags)
// that require parsing/validation. Viper unmarshals into this struct.
type ConfigRawInput struct {
	GraphsDirStr  string  `mapstructure:"graphs-dir"`
	ProjectsStr   string  `mapstructure:"projects"`
	StartMonthStr string  `mapstructure:"start"`
	EndMonthStr   string  `mapstructure:"end"`
	ResultLimit   int     `mapstructure:"limit"`
	Workers       int     `mapstructure:"workers"`
	Precision     int     `mapstructure:"precision"`
	Output        string  `mapstructure:"output"`
	CSVFile       string  `mapstructure:"csv-file"`
	JSONFile      string  `mapstructure:"json-file"`
	ParquetFile   string  `mapstructure:"parquet-file"`
	Width         int     `mapstructure:"width"`
	Preset        string  `mapstructure:"preset"`
	Convention    string  `mapstructure:"convention"`
	VolThreshold  float64 `mapstructure:"volatility-threshold"`
	RecentWindow  int     `mapstructure:"recent-window"`
	FusionDegree  float64 `mapstructure:"fusion-degree"`
	FusionKCore   float64 `mapstructure:"fusion-kcore"`

	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and populates the final Config. Configuration errors are rejected
// here with a descriptive message, never silently clamped.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Limits and workers ---
	if input.ResultLimit <= 0 || input.ResultLimit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.ResultLimit)
	}
	cfg.ResultLimit = input.ResultLimit

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. Precision and output ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format %q. Must be text, csv, json, parquet", input.Output)
	}
	cfg.CSVFile = input.CSVFile
	cfg.JSONFile = input.JSONFile
	cfg.ParquetFile = input.ParquetFile
	if cfg.Output == schema.ParquetOut && cfg.ParquetFile == "" {
		return fmt.Errorf("parquet output requires --parquet-file")
	}
	cfg.Width = input.Width

	// --- 3. Graphs directory and project filter ---
	cfg.GraphsDir = input.GraphsDirStr
	if cfg.GraphsDir == "" {
		cfg.GraphsDir = "."
	}
	cfg.Projects = SplitProjects(input.ProjectsStr)

	// --- 4. Month range ---
	if input.StartMonthStr != "" {
		m, err := schema.ParseMonth(input.StartMonthStr)
		if err != nil {
			return err
		}
		cfg.StartMonth = m
	}
	if input.EndMonthStr != "" {
		m, err := schema.ParseMonth(input.EndMonthStr)
		if err != nil {
			return err
		}
		cfg.EndMonth = m
	}
	if cfg.StartMonth != "" && cfg.EndMonth != "" && cfg.StartMonth > cfg.EndMonth {
		return fmt.Errorf("start month (%s) cannot be after end month (%s)", cfg.StartMonth, cfg.EndMonth)
	}

	// --- 5. Scoring preset and overrides ---
	scoring, err := schema.PresetConfig(schema.AnalyzerPreset(strings.ToLower(input.Preset)))
	if err != nil {
		return err
	}
	if input.Convention != "" {
		scoring.Convention = schema.ScoreConvention(strings.ToLower(input.Convention))
	}
	if input.VolThreshold != 0 {
		scoring.VolatilityThreshold = input.VolThreshold
	}
	if input.RecentWindow != 0 {
		scoring.RecentWindow = input.RecentWindow
	}
	if input.FusionDegree != 0 || input.FusionKCore != 0 {
		scoring.Fusion = schema.FusionWeights{Degree: input.FusionDegree, KCore: input.FusionKCore}
	}
	if err := scoring.Validate(); err != nil {
		return fmt.Errorf("invalid scoring configuration: %w", err)
	}
	cfg.Scoring = scoring

	// --- 6. Persistence backends ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend %q. Must be sqlite, mysql, postgresql, or none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect

	cfg.AnalysisBackend = schema.NoneBackend
	if input.AnalysisBackend != "" {
		cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
		if _, ok := schema.ValidCacheBackends[cfg.AnalysisBackend]; !ok {
			return fmt.Errorf("invalid analysis backend %q. Must be sqlite, mysql, postgresql, or none", input.AnalysisBackend)
		}
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect

	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration. MCP handlers mutate
// per-request copies without touching the server's base configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Projects != nil {
		clone.Projects = make([]string, len(c.Projects))
		copy(clone.Projects, c.Projects)
	}
	if c.Scoring.Dimensions != nil {
		clone.Scoring.Dimensions = make([]schema.DimensionSpec, len(c.Scoring.Dimensions))
		copy(clone.Scoring.Dimensions, c.Scoring.Dimensions)
	}
	if c.Scoring.EdgeWeights != nil {
		clone.Scoring.EdgeWeights = make(map[schema.EdgeType]float64, len(c.Scoring.EdgeWeights))
		maps.Copy(clone.Scoring.EdgeWeights, c.Scoring.EdgeWeights)
	}
	return &clone
}

// WantsProject reports whether the project passes the configured filter.
func (c *Config) WantsProject(project string) bool {
	if len(c.Projects) == 0 {
		return true
	}
	for _, p := range c.Projects {
		if p == project {
			return true
		}
	}
	return false
}

// InMonthRange reports whether the month passes the configured bounds.
func (c *Config) InMonthRange(m schema.Month) bool {
	if c.StartMonth != "" && m < c.StartMonth {
		return false
	}
	if c.EndMonth != "" && m > c.EndMonth {
		return false
	}
	return true
}
