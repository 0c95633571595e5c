package services

import (
	"math"
	"testing"
)

func TestRegionalModifier(t *testing.T) {
	tests := []struct {
		region string
		expect float64
	}{
		{"National Average", 1.00},
		{"Nairobi", 1.15},
		{"Mombasa", 1.08},
		{"Eldoret", 0.95},
		{"Rural", 0.90},
		{"Atlantis", 1.00}, // unknown defaults to baseline
		{"", 1.00},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			if got := RegionalModifier(tt.region); got != tt.expect {
				t.Errorf("RegionalModifier(%q) = %v, want %v", tt.region, got, tt.expect)
			}
		})
	}
}

func TestIsOutlier(t *testing.T) {
	tests := []struct {
		name          string
		customRate    float64
		benchmarkRate float64
		expect        bool
	}{
		{"exactly 20 percent above is not an outlier", 1200, 1000, false},
		{"20.01 percent above is an outlier", 1200.1, 1000, true},
		{"exactly 20 percent below is not an outlier", 800, 1000, false},
		{"well below is an outlier", 700, 1000, true},
		{"equal rates", 1000, 1000, false},
		{"zero benchmark never flags", 99999, 0, false},
		{"zero benchmark with zero custom", 0, 0, false},
		{"NaN benchmark never flags", 500, math.NaN(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOutlier(tt.customRate, tt.benchmarkRate); got != tt.expect {
				t.Errorf("IsOutlier(%v, %v) = %v, want %v",
					tt.customRate, tt.benchmarkRate, got, tt.expect)
			}
		})
	}
}

func TestEffectiveRate(t *testing.T) {
	tests := []struct {
		name          string
		customRate    float64
		benchmarkRate float64
		useBenchmark  bool
		region        string
		expect        float64
	}{
		{"benchmark with metro modifier", 0, 1000, true, "Nairobi", 1150},
		{"benchmark with baseline region", 0, 1000, true, "National Average", 1000},
		{"benchmark with unknown region", 0, 1000, true, "Atlantis", 1000},
		{"custom rate ignores modifier", 900, 1000, false, "Nairobi", 900},
		{"custom rate verbatim", 1234.56, 0, false, "Rural", 1234.56},
		{"negative custom clamps to zero", -50, 0, false, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveRate(tt.customRate, tt.benchmarkRate, tt.useBenchmark, tt.region)
			if math.Abs(got-tt.expect) > 0.0001 {
				t.Errorf("EffectiveRate(%v, %v, %v, %q) = %v, want %v",
					tt.customRate, tt.benchmarkRate, tt.useBenchmark, tt.region, got, tt.expect)
			}
		})
	}
}
