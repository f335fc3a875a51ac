// Package scoring turns theme counts and price quotes into theme strength
// scores, risk tiers, and ranked stock picks.
package scoring

import "math"

// freqSaturation is the news count at which the frequency term saturates.
const freqSaturation = 20

// maxReportThemes is the theme window for both the report and the picker.
const maxReportThemes = 8

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FreqNorm scales a news count into [0,1], saturating at 20 mentions.
// Shared by theme strength and stock scoring so the two cannot diverge.
func FreqNorm(count int) float64 {
	if count < 0 {
		count = 0
	}
	return clamp(float64(count)/freqSaturation, 0, 1)
}

// Strength blends news frequency and price momentum into a [0,5] score,
// rounded to one decimal. The price term maps a ±5% window linearly onto
// [0,1] with neutral at 0%. A non-finite average degrades to 0.0.
func Strength(count int, avgDeltaPct float64) float64 {
	if math.IsNaN(avgDeltaPct) || math.IsInf(avgDeltaPct, 0) {
		return 0.0
	}
	freq := FreqNorm(count)
	price := clamp((avgDeltaPct+5)/10, 0, 1)
	return round1(5 * (0.6*freq + 0.4*price))
}

// RiskTier buckets the average price delta into a discrete 1-5 tier.
// Bands are evaluated top-down, inclusive on the lower bound.
func RiskTier(avgDeltaPct float64) int {
	switch {
	case avgDeltaPct >= 3:
		return 1
	case avgDeltaPct >= 1:
		return 2
	case avgDeltaPct >= -1:
		return 3
	case avgDeltaPct >= -3:
		return 4
	default:
		return 5
	}
}
