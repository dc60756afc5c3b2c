package core

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/oss-pulse/pulse/schema"
)

// mockGraphSource serves snapshots from memory.
type mockGraphSource struct {
	snapshots map[string]map[schema.Month]*schema.Snapshot
	failLoads map[schema.Month]bool
}

func (m *mockGraphSource) Projects(ctx context.Context) ([]string, error) {
	projects := make([]string, 0, len(m.snapshots))
	for p := range m.snapshots {
		projects = append(projects, p)
	}
	sort.Strings(projects)
	return projects, nil
}

func (m *mockGraphSource) Months(ctx context.Context, project string) ([]schema.Month, error) {
	months := make([]schema.Month, 0, len(m.snapshots[project]))
	for mo := range m.snapshots[project] {
		months = append(months, mo)
	}
	schema.SortMonths(months)
	return months, nil
}

func (m *mockGraphSource) Load(ctx context.Context, project string, month schema.Month) (*schema.Snapshot, error) {
	if m.failLoads[month] {
		return nil, errors.New("corrupt snapshot")
	}
	s, ok := m.snapshots[project][month]
	if !ok {
		return nil, errors.New("missing snapshot")
	}
	return s, nil
}

// mockCacheStore is an in-memory result cache.
type mockCacheStore struct {
	entries map[string][]byte
	version int
	ts      int64
	sets    int
	gets    int
}

func newMockCacheStore() *mockCacheStore {
	return &mockCacheStore{entries: make(map[string][]byte)}
}

func (m *mockCacheStore) Get(key string) ([]byte, int, int64, error) {
	m.gets++
	data, ok := m.entries[key]
	if !ok {
		return nil, 0, 0, errors.New("cache miss")
	}
	return data, m.version, m.ts, nil
}

func (m *mockCacheStore) Set(key string, value []byte, version int, timestamp int64) error {
	m.sets++
	m.entries[key] = value
	m.version = version
	m.ts = timestamp
	return nil
}

func (m *mockCacheStore) GetStatus() (schema.CacheStatus, error) { return schema.CacheStatus{}, nil }
func (m *mockCacheStore) Close() error                           { return nil }

// mockCacheManager wires optional mock stores.
type mockCacheManager struct {
	result   contract.CacheStore
	analysis contract.AnalysisStore
}

func (m *mockCacheManager) GetResultStore() contract.CacheStore      { return m.result }
func (m *mockCacheManager) GetAnalysisStore() contract.AnalysisStore { return m.analysis }

// mockAnalysisStore records tracking calls.
type mockAnalysisStore struct {
	begun    bool
	ended    bool
	projects []string
	total    int
}

func (m *mockAnalysisStore) BeginAnalysis(start time.Time, params map[string]any) (int64, error) {
	m.begun = true
	return 1, nil
}

func (m *mockAnalysisStore) EndAnalysis(id int64, end time.Time, total int) error {
	m.ended = true
	m.total = total
	return nil
}

func (m *mockAnalysisStore) RecordProjectScore(id int64, rec schema.ProjectScoreRecord) error {
	m.projects = append(m.projects, rec.Project)
	return nil
}

func (m *mockAnalysisStore) GetStatus() (schema.AnalysisStatus, error) {
	return schema.AnalysisStatus{}, nil
}

func (m *mockAnalysisStore) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	return nil, nil
}

func (m *mockAnalysisStore) GetAllProjectScores() ([]schema.ProjectScoreRecord, error) {
	return nil, nil
}

func (m *mockAnalysisStore) Close() error { return nil }

func testConfig(t *testing.T) *contract.Config {
	t.Helper()
	cfg := &contract.Config{}
	err := contract.ProcessAndValidate(cfg, &contract.ConfigRawInput{
		ResultLimit:  contract.DefaultResultLimit,
		Workers:      2,
		Precision:    1,
		Output:       "text",
		Preset:       "burnout",
		CacheBackend: "none",
	})
	require.NoError(t, err)
	return cfg
}

// declineSource builds a project whose activity collapses over four months,
// with 2024-03 missing entirely.
func declineSource() *mockGraphSource {
	edges := func(n int) []schema.Edge {
		out := make([]schema.Edge, 0, n)
		for i := range n {
			out = append(out, schema.Edge{
				Source: int64(i%5 + 1),
				Target: int64((i+1)%5 + 1),
				Type:   schema.EdgePRMerge,
			})
		}
		return out
	}
	snap := func(month schema.Month, n int) *schema.Snapshot {
		s := snapshotOf(edges(n)...)
		s.Project = "demo"
		s.Month = month
		return s
	}
	return &mockGraphSource{
		snapshots: map[string]map[schema.Month]*schema.Snapshot{
			"demo": {
				"2024-01": snap("2024-01", 40),
				"2024-02": snap("2024-02", 20),
				"2024-04": snap("2024-04", 5),
			},
		},
	}
}

// TestAnalyzeProject checks the full pipeline on a declining project: the
// calendar gap stays out of the records, the period spans the observed
// range, and the composite carries some risk.
func TestAnalyzeProject(t *testing.T) {
	cfg := testConfig(t)
	src := declineSource()

	report, err := AnalyzeProject(context.Background(), src, cfg, "demo")
	require.NoError(t, err)

	assert.Equal(t, "demo", report.Project)
	assert.Equal(t, schema.BurnoutPreset, report.Preset)
	assert.Equal(t, 3, report.MonthsAnalyzed)
	assert.Equal(t, "2024-01..2024-04", report.Period)

	require.Len(t, report.Records, 3)
	months := []schema.Month{report.Records[0].Month, report.Records[1].Month, report.Records[2].Month}
	assert.Equal(t, []schema.Month{"2024-01", "2024-02", "2024-04"}, months)

	assert.Positive(t, report.Composite.RiskTotal)
	assert.Contains(t, report.Factors, schema.DimActivity)
	assert.InDelta(t, 5.0, report.Factors[schema.DimActivity].Value, 1e-9)
}

// TestAnalyzeProjectDeterministic checks that repeated runs produce
// identical reports.
func TestAnalyzeProjectDeterministic(t *testing.T) {
	cfg := testConfig(t)
	src := declineSource()

	first, err := AnalyzeProject(context.Background(), src, cfg, "demo")
	require.NoError(t, err)
	for range 5 {
		next, err := AnalyzeProject(context.Background(), src, cfg, "demo")
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}

// TestAnalyzeProjectNoMonths checks the neutral report for a project with
// no snapshots at all.
func TestAnalyzeProjectNoMonths(t *testing.T) {
	cfg := testConfig(t)
	src := &mockGraphSource{snapshots: map[string]map[schema.Month]*schema.Snapshot{"empty": {}}}

	report, err := AnalyzeProject(context.Background(), src, cfg, "empty")
	require.NoError(t, err)

	assert.Zero(t, report.MonthsAnalyzed)
	assert.Empty(t, report.Records)
	assert.Equal(t, schema.MinimalRisk, report.Composite.Level)
}

// TestAnalyzeProjectSkipsCorruptMonths checks that an unloadable month
// degrades to a gap instead of failing the project.
func TestAnalyzeProjectSkipsCorruptMonths(t *testing.T) {
	cfg := testConfig(t)
	src := declineSource()
	src.failLoads = map[schema.Month]bool{"2024-02": true}

	report, err := AnalyzeProject(context.Background(), src, cfg, "demo")
	require.NoError(t, err)

	require.Len(t, report.Records, 2)
	assert.Equal(t, schema.Month("2024-01"), report.Records[0].Month)
	assert.Equal(t, schema.Month("2024-04"), report.Records[1].Month)
}

// TestAnalyzeProjectMonthFilter checks the configured month bounds.
func TestAnalyzeProjectMonthFilter(t *testing.T) {
	cfg := testConfig(t)
	cfg.StartMonth = "2024-02"
	cfg.EndMonth = "2024-02"

	report, err := AnalyzeProject(context.Background(), declineSource(), cfg, "demo")
	require.NoError(t, err)

	assert.Equal(t, 1, report.MonthsAnalyzed)
	assert.Equal(t, "2024-02..2024-02", report.Period)
}

// TestAnalyzeProjects checks the concurrent fan-out: deterministic project
// order and analysis tracking wired through the store.
func TestAnalyzeProjects(t *testing.T) {
	cfg := testConfig(t)
	src := declineSource()
	src.snapshots["alpha"] = src.snapshots["demo"]
	src.snapshots["zeta"] = src.snapshots["demo"]
	tracking := &mockAnalysisStore{}
	mgr := &mockCacheManager{analysis: tracking}

	reports, err := AnalyzeProjects(context.Background(), src, cfg, mgr)
	require.NoError(t, err)

	require.Len(t, reports, 3)
	assert.Equal(t, "alpha", reports[0].Project)
	assert.Equal(t, "demo", reports[1].Project)
	assert.Equal(t, "zeta", reports[2].Project)

	assert.True(t, tracking.begun)
	assert.True(t, tracking.ended)
	assert.Equal(t, 3, tracking.total)
	assert.Len(t, tracking.projects, 3)
}

// TestAnalyzeProjectsFilter checks the project filter and the no-match error.
func TestAnalyzeProjectsFilter(t *testing.T) {
	cfg := testConfig(t)
	cfg.Projects = []string{"demo"}
	mgr := &mockCacheManager{}

	reports, err := AnalyzeProjects(context.Background(), declineSource(), cfg, mgr)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "demo", reports[0].Project)

	cfg.Projects = []string{"nope"}
	_, err = AnalyzeProjects(context.Background(), declineSource(), cfg, mgr)
	assert.ErrorIs(t, err, ErrNoProjects)
}

// TestCachedAnalyzeProject checks the result cache round trip: the second
// run is served from the store and matches the computed report.
func TestCachedAnalyzeProject(t *testing.T) {
	cfg := testConfig(t)
	src := declineSource()
	store := newMockCacheStore()
	mgr := &mockCacheManager{result: store}

	first, err := cachedAnalyzeProject(context.Background(), src, cfg, mgr, "demo")
	require.NoError(t, err)
	assert.Equal(t, 1, store.sets)

	second, err := cachedAnalyzeProject(context.Background(), src, cfg, mgr, "demo")
	require.NoError(t, err)
	assert.Equal(t, 1, store.sets, "second run should hit the cache")
	assert.Equal(t, first.Composite, second.Composite)
	assert.Equal(t, first.Period, second.Period)
}

// TestCachedAnalyzeProjectInvalidation checks that a new month or a config
// change produces a different cache key.
func TestCachedAnalyzeProjectInvalidation(t *testing.T) {
	cfg := testConfig(t)
	src := declineSource()

	base, err := generateCacheKey(context.Background(), src, cfg, "demo")
	require.NoError(t, err)

	src.snapshots["demo"]["2024-05"] = src.snapshots["demo"]["2024-04"]
	withMonth, err := generateCacheKey(context.Background(), src, cfg, "demo")
	require.NoError(t, err)
	assert.NotEqual(t, base, withMonth)

	cfg.Scoring.VolatilityThreshold = 0.4
	withConfig, err := generateCacheKey(context.Background(), src, cfg, "demo")
	require.NoError(t, err)
	assert.NotEqual(t, withMonth, withConfig)
}

// TestSummarize checks flattening, worst-first ordering and the limit.
func TestSummarize(t *testing.T) {
	cfg := testConfig(t)
	cfg.ResultLimit = 2

	reports := []*schema.ProjectReport{
		{Project: "calm", Composite: schema.CompositeScore{Total: 5, Level: schema.MinimalRisk}},
		{Project: "burning", Composite: schema.CompositeScore{Total: 80, Level: schema.HighRisk}, Alerts: []schema.Alert{
			{Severity: schema.HighSeverity}, {Severity: schema.MediumSeverity},
		}},
		{Project: "warm", Composite: schema.CompositeScore{Total: 30, Level: schema.LowRisk}},
	}

	rows := Summarize(reports, cfg)

	require.Len(t, rows, 2)
	assert.Equal(t, "burning", rows[0].Project)
	assert.Equal(t, "warm", rows[1].Project)
	assert.Equal(t, 2, rows[0].AlertCount)
	assert.Equal(t, 1, rows[0].HighAlerts)
}
