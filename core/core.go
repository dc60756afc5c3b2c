// Package core has the scoring engine: core-member identification, metric
// series extraction, three-layer scoring, alert detection and composite
// aggregation. Everything here is pure: identical inputs and configuration
// produce bit-identical outputs, so re-runs are safe to cache and projects
// can be scored in parallel.
package core

import "math"

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// mean returns the arithmetic mean, or 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdev returns the population standard deviation, or 0 for fewer than two
// values.
func stdev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mu := mean(values)
	var variance float64
	for _, v := range values {
		d := v - mu
		variance += d * d
	}
	return math.Sqrt(variance / float64(n))
}

// regressionSlope fits value against index (x = 0..n-1) with the closed-form
// least-squares slope. Returns 0 when the denominator degenerates (n <= 1).
func regressionSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	xMean := float64(n-1) / 2.0
	yMean := mean(values)

	var num, den float64
	for i, y := range values {
		dx := float64(i) - xMean
		num += dx * (y - yMean)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}
