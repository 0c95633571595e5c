package services

import "math"

// OutlierThreshold is the relative deviation from the benchmark rate above
// which a custom rate is flagged for review. Deviation of exactly the
// threshold is not an outlier.
const OutlierThreshold = 0.20

// regionalModifiers scales benchmark rates for geographic cost variation.
// "National Average" is the 1.00 baseline; metro regions sit above it and
// up-country regions below.
var regionalModifiers = map[string]float64{
	"National Average": 1.00,
	"Nairobi":          1.15,
	"Mombasa":          1.08,
	"Kisumu":           1.02,
	"Nakuru":           1.00,
	"Eldoret":          0.95,
	"Rural":            0.90,
}

// RegionalModifier returns the benchmark multiplier for a region. Unknown
// region names get the neutral baseline 1.00.
func RegionalModifier(region string) float64 {
	if m, ok := regionalModifiers[region]; ok {
		return m
	}
	return 1.00
}

// IsOutlier reports whether a user-entered rate deviates from the benchmark
// by more than the threshold. A zero, missing or non-finite benchmark never
// flags: an unset benchmark is not evidence of a bad rate, and the guard
// avoids dividing by zero. Advisory only; it never blocks an edit.
func IsOutlier(customRate, benchmarkRate float64) bool {
	if benchmarkRate == 0 || math.IsNaN(benchmarkRate) || math.IsInf(benchmarkRate, 0) || math.IsNaN(customRate) {
		return false
	}
	return math.Abs(customRate-benchmarkRate)/math.Abs(benchmarkRate) > OutlierThreshold
}

// EffectiveRate returns the rate that prices an item: the regionally adjusted
// benchmark when useBenchmark is set, otherwise the custom rate verbatim.
// The regional modifier never applies to user-entered custom rates.
func EffectiveRate(customRate, benchmarkRate float64, useBenchmark bool, region string) float64 {
	if useBenchmark {
		return safeAmount(benchmarkRate) * RegionalModifier(region)
	}
	return safeAmount(customRate)
}
