package core

import (
	"github.com/oss-pulse/pulse/schema"
)

// Compose sums the dimension scores into a single composite and classifies
// it. Under the risk convention the total is the raw sum (higher is worse);
// under the health convention the reported total is 100 minus the sum
// (higher is better) while the level still reflects the underlying risk.
func Compose(dimensions map[string]schema.DimensionScore, cfg *schema.ScoringConfig) schema.CompositeScore {
	var riskTotal float64
	for _, d := range dimensions {
		riskTotal += d.Total
	}

	composite := schema.CompositeScore{
		Dimensions: dimensions,
		RiskTotal:  riskTotal,
		Total:      riskTotal,
		Level:      classifyRisk(riskTotal, cfg.Cutpoints),
		Convention: cfg.Convention,
	}
	if cfg.Convention == schema.HealthConvention {
		composite.Total = 100 - riskTotal
	}
	return composite
}

// classifyRisk maps a risk total to a discrete level via the configured
// cut points.
func classifyRisk(total float64, cuts schema.RiskCutpoints) schema.RiskLevel {
	switch {
	case total >= cuts.High:
		return schema.HighRisk
	case total >= cuts.Medium:
		return schema.MediumRisk
	case total >= cuts.Low:
		return schema.LowRisk
	default:
		return schema.MinimalRisk
	}
}
