package core

import (
	"github.com/oss-pulse/pulse/schema"
)

// ScoreSeries turns one bounded metric history into a dimension risk score
// decomposed into three layers:
//
//   - long-term trend (40% of the budget): least-squares slope of the
//     series, normalized to its first non-zero value so the slope reads as
//     fraction-per-month regardless of the metric's natural magnitude;
//   - recent state (40%): relative change between the first and last
//     window of samples;
//   - volatility (20%): standard deviation of month-over-month relative
//     changes above the configured threshold, penalized regardless of the
//     bad direction since instability hurts either way.
//
// Fewer than two usable samples yield an all-zero score: insufficient data
// is never penalized. Each layer clamps independently to its share of
// spec.MaxScore, so the total stays within [0, MaxScore].
func ScoreSeries(series *schema.MetricSeries, spec schema.DimensionSpec, recentWindow int, volThreshold float64) schema.DimensionScore {
	values := series.Values()
	n := len(values)
	score := schema.DimensionScore{UsableMonths: n}
	if n < 2 {
		return score
	}

	increaseIsBad := series.BadDirection == schema.IncreaseIsBad

	// Layer 1: long-term trend.
	slope := regressionSlope(normalizeToFirstNonZero(values))
	score.Slope = slope
	directed := -slope
	if increaseIsBad {
		directed = slope
	}
	score.TrendScore = clamp(directed*spec.KTrend, 0, schema.TrendShare*spec.MaxScore)

	// Layer 2: recent state shift.
	w := recentWindow
	if w > n {
		w = n
	}
	earlyAvg := mean(values[:w])
	recentAvg := mean(values[n-w:])
	var change float64
	if earlyAvg != 0 {
		change = (recentAvg - earlyAvg) / abs(earlyAvg)
	}
	score.RecentChange = change
	directed = -change
	if increaseIsBad {
		directed = change
	}
	score.RecentScore = clamp(directed*spec.KRecent, 0, schema.RecentShare*spec.MaxScore)

	// Layer 3: volatility.
	vol := relativeVolatility(values)
	score.Volatility = vol
	score.VolatilityScore = clamp((vol-volThreshold)*spec.KVol, 0, schema.VolatilityShare*spec.MaxScore)

	score.Total = score.TrendScore + score.RecentScore + score.VolatilityScore
	return score
}

// normalizeToFirstNonZero rescales a series by its first non-zero value so
// the regression slope is comparable across metrics. All-zero series pass
// through unchanged.
func normalizeToFirstNonZero(values []float64) []float64 {
	var base float64
	for _, v := range values {
		if v != 0 {
			base = v
			break
		}
	}
	if base == 0 {
		return values
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / base
	}
	return out
}

// relativeVolatility is the standard deviation of month-over-month relative
// changes. Changes with a non-positive previous value are skipped; fewer
// than two usable changes mean volatility cannot be estimated and read as 0.
func relativeVolatility(values []float64) float64 {
	changes := make([]float64, 0, len(values))
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev <= 0 {
			continue
		}
		changes = append(changes, (values[i]-prev)/prev)
	}
	if len(changes) < 2 {
		return 0
	}
	return stdev(changes)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
