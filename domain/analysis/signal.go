package analysis

import "math"

// Signal buckets an effect size into a qualitative strength grade used by
// interpretation strings and report ordering.
type Signal string

const (
	SignalWeak       Signal = "weak"
	SignalModerate   Signal = "moderate"
	SignalStrong     Signal = "strong"
	SignalVeryStrong Signal = "very_strong"
)

// ClassifyEffect grades a standardized effect size (Cohen's d, Cramér's V,
// correlation coefficient). Thresholds follow the usual conventions:
// 0.2 / 0.5 / 0.8.
func ClassifyEffect(effect float64) Signal {
	abs := math.Abs(effect)
	switch {
	case abs < 0.2:
		return SignalWeak
	case abs < 0.5:
		return SignalModerate
	case abs < 0.8:
		return SignalStrong
	default:
		return SignalVeryStrong
	}
}

// ClassifyEta grades eta-squared, which lives on a compressed scale
// (0.01 small, 0.06 medium, 0.14 large).
func ClassifyEta(eta float64) Signal {
	switch {
	case eta < 0.01:
		return SignalWeak
	case eta < 0.06:
		return SignalModerate
	case eta < 0.14:
		return SignalStrong
	default:
		return SignalVeryStrong
	}
}
