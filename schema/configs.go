package schema

import (
	"fmt"
	"math"
)

// Layer weights shared by every preset. The three layers of a dimension
// score split its budget 40/40/20.
const (
	TrendShare      = 0.4
	RecentShare     = 0.4
	VolatilityShare = 0.2
)

// Default scale constants for a dimension with a 25-point budget. They match
// the burnout analyzer family: a slope of -10%/month, a recent change of
// -100%, or a volatility of 0.4 above threshold each saturate their layer.
const (
	DefaultDimensionMax  = 25.0
	DefaultKTrend        = 100.0
	DefaultKRecent       = 10.0
	DefaultKVolatility   = 25.0
	DefaultVolThreshold  = 0.3
	DefaultRecentWindow  = 3
	DefaultEdgeWeight    = 1.0
	DefaultWeightShare   = 0.7 // core selection: cumulative weighted-degree stop
	DefaultCountShare    = 0.3 // core selection: selected-count stop
	DefaultMinBeforeMean = 3   // core selection: below-mean stop arming size
)

// FusionWeights combines the two core-selection signals. The pair must be
// non-negative and sum to 1.
type FusionWeights struct {
	Degree float64 `json:"degree" mapstructure:"degree"`
	KCore  float64 `json:"kcore" mapstructure:"kcore"`
}

// DimensionSpec configures one tracked metric dimension.
type DimensionSpec struct {
	Name      string    `json:"name" mapstructure:"name"`
	Direction Direction `json:"direction" mapstructure:"direction"`
	MaxScore  float64   `json:"max_score" mapstructure:"max_score"`

	// Per-metric scale constants. Different metrics have different natural
	// magnitudes, so these are required configuration, not universal values.
	KTrend  float64 `json:"k_trend" mapstructure:"k_trend"`
	KRecent float64 `json:"k_recent" mapstructure:"k_recent"`
	KVol    float64 `json:"k_vol" mapstructure:"k_vol"`
}

// CoreSelection configures the OR-combined stopping rule for core members.
type CoreSelection struct {
	WeightShare   float64 `json:"weight_share" mapstructure:"weight_share"`
	CountShare    float64 `json:"count_share" mapstructure:"count_share"`
	MinBeforeMean int     `json:"min_before_mean" mapstructure:"min_before_mean"`
}

// AlertThresholds configures the month-over-month alert detector. All drop
// thresholds are expressed as negative relative changes.
type AlertThresholds struct {
	ActivityDrop        float64 `json:"activity_drop" mapstructure:"activity_drop"`
	ActivityDropHigh    float64 `json:"activity_drop_high" mapstructure:"activity_drop_high"`
	CoreLossRatio       float64 `json:"core_loss_ratio" mapstructure:"core_loss_ratio"`
	CoreLossRatioHigh   float64 `json:"core_loss_ratio_high" mapstructure:"core_loss_ratio_high"`
	CoreLossCount       int     `json:"core_loss_count" mapstructure:"core_loss_count"`
	CoreLossCountHigh   int     `json:"core_loss_count_high" mapstructure:"core_loss_count_high"`
	DensityDrop         float64 `json:"density_drop" mapstructure:"density_drop"`
	ContributorDrop     float64 `json:"contributor_drop" mapstructure:"contributor_drop"`
	SustainedDrop       float64 `json:"sustained_drop" mapstructure:"sustained_drop"`
	SustainedDeclineLen int     `json:"sustained_decline_len" mapstructure:"sustained_decline_len"`
}

// RiskCutpoints maps a composite risk total to a discrete level.
type RiskCutpoints struct {
	High   float64 `json:"high" mapstructure:"high"`
	Medium float64 `json:"medium" mapstructure:"medium"`
	Low    float64 `json:"low" mapstructure:"low"`
}

// ScoringConfig is the full configuration surface of the scoring core. One
// instance is immutable for the duration of a run; analyzers obtain theirs
// from a preset and optional overrides.
type ScoringConfig struct {
	Preset     AnalyzerPreset  `json:"preset" mapstructure:"preset"`
	Convention ScoreConvention `json:"convention" mapstructure:"convention"`

	EdgeWeights       map[EdgeType]float64 `json:"edge_weights" mapstructure:"edge_weights"`
	DefaultEdgeWeight float64              `json:"default_edge_weight" mapstructure:"default_edge_weight"`

	Fusion    FusionWeights `json:"fusion" mapstructure:"fusion"`
	Selection CoreSelection `json:"selection" mapstructure:"selection"`

	Dimensions          []DimensionSpec `json:"dimensions" mapstructure:"dimensions"`
	RecentWindow        int             `json:"recent_window" mapstructure:"recent_window"`
	VolatilityThreshold float64         `json:"volatility_threshold" mapstructure:"volatility_threshold"`

	Alerts    AlertThresholds `json:"alerts" mapstructure:"alerts"`
	Cutpoints RiskCutpoints   `json:"cutpoints" mapstructure:"cutpoints"`
}

// defaultEdgeWeights reflect the relative value of contribution types:
// merging a PR is the core maintainer duty, review is technical
// collaboration, issue traffic is participation.
func defaultEdgeWeights() map[EdgeType]float64 {
	return map[EdgeType]float64{
		EdgePRMerge:            3.0,
		EdgePRReview:           1.5,
		EdgeIssueInteraction:   0.5,
		EdgeIssueCoParticipant: 0.5,
	}
}

func defaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		ActivityDrop:        -0.5,
		ActivityDropHigh:    -0.7,
		CoreLossRatio:       0.3,
		CoreLossRatioHigh:   0.5,
		CoreLossCount:       2,
		CoreLossCountHigh:   3,
		DensityDrop:         -0.3,
		ContributorDrop:     -0.4,
		SustainedDrop:       -0.3,
		SustainedDeclineLen: 3,
	}
}

func defaultDimension(name string, dir Direction) DimensionSpec {
	return DimensionSpec{
		Name:      name,
		Direction: dir,
		MaxScore:  DefaultDimensionMax,
		KTrend:    DefaultKTrend,
		KRecent:   DefaultKRecent,
		KVol:      DefaultKVolatility,
	}
}

func baseConfig(preset AnalyzerPreset) ScoringConfig {
	return ScoringConfig{
		Preset:              preset,
		Convention:          RiskConvention,
		EdgeWeights:         defaultEdgeWeights(),
		DefaultEdgeWeight:   DefaultEdgeWeight,
		Selection:           CoreSelection{WeightShare: DefaultWeightShare, CountShare: DefaultCountShare, MinBeforeMean: DefaultMinBeforeMean},
		RecentWindow:        DefaultRecentWindow,
		VolatilityThreshold: DefaultVolThreshold,
		Alerts:              defaultAlertThresholds(),
		Cutpoints:           RiskCutpoints{High: 60, Medium: 40, Low: 20},
	}
}

// PresetConfig returns the named preset's full scoring configuration.
// The fusion pair is domain-tuned per preset, not derived; burnout guards
// against over-weighting raw contribution volume, the others against
// over-weighting structural position.
func PresetConfig(preset AnalyzerPreset) (ScoringConfig, error) {
	cfg := baseConfig(preset)
	switch preset {
	case BurnoutPreset:
		cfg.Fusion = FusionWeights{Degree: 0.5, KCore: 0.5}
		cfg.Dimensions = []DimensionSpec{
			defaultDimension(DimActivity, DecreaseIsBad),
			defaultDimension(DimContributors, DecreaseIsBad),
			defaultDimension(DimCoreStability, DecreaseIsBad),
			defaultDimension(DimCollaboration, DecreaseIsBad),
		}
	case NewcomerPreset:
		cfg.Fusion = FusionWeights{Degree: 0.6, KCore: 0.4}
		cfg.Dimensions = []DimensionSpec{
			defaultDimension(DimActivity, DecreaseIsBad),
			defaultDimension(DimContributors, DecreaseIsBad),
			defaultDimension(DimCoreStability, DecreaseIsBad),
			defaultDimension(DimCoreDistance, IncreaseIsBad),
		}
	case QualityPreset:
		cfg.Fusion = FusionWeights{Degree: 0.6, KCore: 0.4}
		cfg.Convention = HealthConvention
		cfg.Dimensions = []DimensionSpec{
			defaultDimension(DimActivity, DecreaseIsBad),
			defaultDimension(DimContributors, DecreaseIsBad),
			defaultDimension(DimCoreStability, DecreaseIsBad),
			defaultDimension(DimCollaboration, DecreaseIsBad),
		}
	default:
		return ScoringConfig{}, fmt.Errorf("unknown analyzer preset %q. Must be one of burnout, newcomer, quality", preset)
	}
	return cfg, nil
}

// Validate rejects configurations that would silently corrupt scores.
// Configuration errors are reported at load time, never clamped away.
func (c *ScoringConfig) Validate() error {
	if _, ok := ValidConventions[c.Convention]; !ok {
		return fmt.Errorf("invalid score convention %q. Must be risk or health", c.Convention)
	}
	if c.Fusion.Degree < 0 || c.Fusion.KCore < 0 {
		return fmt.Errorf("fusion weights must be non-negative (got degree=%.2f kcore=%.2f)", c.Fusion.Degree, c.Fusion.KCore)
	}
	if sum := c.Fusion.Degree + c.Fusion.KCore; math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("fusion weights must sum to 1.0 (got %.4f)", sum)
	}
	for et, w := range c.EdgeWeights {
		if w < 0 {
			return fmt.Errorf("edge weight for %s must be non-negative (got %.2f)", et, w)
		}
	}
	if c.DefaultEdgeWeight < 0 {
		return fmt.Errorf("default edge weight must be non-negative (got %.2f)", c.DefaultEdgeWeight)
	}
	if c.Selection.WeightShare <= 0 || c.Selection.WeightShare > 1 {
		return fmt.Errorf("core selection weight share must be in (0, 1] (got %.2f)", c.Selection.WeightShare)
	}
	if c.Selection.CountShare <= 0 || c.Selection.CountShare > 1 {
		return fmt.Errorf("core selection count share must be in (0, 1] (got %.2f)", c.Selection.CountShare)
	}
	if c.Selection.MinBeforeMean < 1 {
		return fmt.Errorf("core selection min-before-mean must be at least 1 (got %d)", c.Selection.MinBeforeMean)
	}
	if len(c.Dimensions) == 0 {
		return fmt.Errorf("at least one dimension is required for preset %q", c.Preset)
	}
	seen := make(map[string]struct{}, len(c.Dimensions))
	for _, d := range c.Dimensions {
		if d.Name == "" {
			return fmt.Errorf("dimension name must not be empty")
		}
		if _, dup := seen[d.Name]; dup {
			return fmt.Errorf("duplicate dimension %q", d.Name)
		}
		seen[d.Name] = struct{}{}
		if d.Direction != DecreaseIsBad && d.Direction != IncreaseIsBad {
			return fmt.Errorf("dimension %q has invalid direction %q. Must be decrease or increase", d.Name, d.Direction)
		}
		if d.MaxScore <= 0 {
			return fmt.Errorf("dimension %q max score must be positive (got %.2f)", d.Name, d.MaxScore)
		}
		if d.KTrend < 0 || d.KRecent < 0 || d.KVol < 0 {
			return fmt.Errorf("dimension %q scale constants must be non-negative", d.Name)
		}
	}
	if c.RecentWindow < 1 {
		return fmt.Errorf("recent window must be at least 1 (got %d)", c.RecentWindow)
	}
	if c.VolatilityThreshold < 0 {
		return fmt.Errorf("volatility threshold must be non-negative (got %.2f)", c.VolatilityThreshold)
	}
	if !(c.Cutpoints.High > c.Cutpoints.Medium && c.Cutpoints.Medium > c.Cutpoints.Low && c.Cutpoints.Low > 0) {
		return fmt.Errorf("risk cutpoints must be strictly decreasing and positive (got %.0f/%.0f/%.0f)",
			c.Cutpoints.High, c.Cutpoints.Medium, c.Cutpoints.Low)
	}
	if err := c.Alerts.validate(); err != nil {
		return err
	}
	return nil
}

func (a *AlertThresholds) validate() error {
	if a.ActivityDrop >= 0 || a.ActivityDropHigh >= 0 || a.DensityDrop >= 0 || a.ContributorDrop >= 0 || a.SustainedDrop >= 0 {
		return fmt.Errorf("alert drop thresholds must be negative relative changes")
	}
	if a.ActivityDropHigh > a.ActivityDrop {
		return fmt.Errorf("activity high threshold (%.2f) must be at or below the medium threshold (%.2f)", a.ActivityDropHigh, a.ActivityDrop)
	}
	if a.CoreLossRatio <= 0 || a.CoreLossRatio > 1 || a.CoreLossRatioHigh < a.CoreLossRatio {
		return fmt.Errorf("core loss ratios must satisfy 0 < ratio <= high ratio")
	}
	if a.CoreLossCount < 1 || a.CoreLossCountHigh < a.CoreLossCount {
		return fmt.Errorf("core loss counts must satisfy 1 <= count <= high count")
	}
	if a.SustainedDeclineLen < 2 {
		return fmt.Errorf("sustained decline length must be at least 2 (got %d)", a.SustainedDeclineLen)
	}
	return nil
}

// EdgeWeight returns the configured weight for an edge type, falling back to
// the default weight for unknown types.
func (c *ScoringConfig) EdgeWeight(et EdgeType) float64 {
	if w, ok := c.EdgeWeights[et]; ok {
		return w
	}
	return c.DefaultEdgeWeight
}

// Dimension returns the spec for a named dimension, or false when untracked.
func (c *ScoringConfig) Dimension(name string) (DimensionSpec, bool) {
	for _, d := range c.Dimensions {
		if d.Name == name {
			return d, true
		}
	}
	return DimensionSpec{}, false
}
