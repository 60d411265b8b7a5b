// Package hypothesis implements the three significance tests the platform
// runs against tabular data (Welch's t, chi-square independence, one-way
// ANOVA) plus the mean confidence interval. Statistical edge cases never
// error: they come back as degenerate results with p=1, a zeroed statistic
// and the reason in Interpretation, so a batch over messy data keeps
// moving. Only structural misuse (mismatched slice lengths) returns an
// error.
package hypothesis

import (
	"goinsight/domain/analysis"
)

// DefaultConfidenceLevel applies when Options leaves the level unset.
const DefaultConfidenceLevel = 0.95

// Options is shared by all tests in this package.
type Options struct {
	// ConfidenceLevel sets the significance rule p < 1-level. Zero means 0.95.
	ConfidenceLevel float64
	// Labels optionally names the compared groups for interpretation text.
	Labels []string
}

func (o Options) level() float64 {
	if o.ConfidenceLevel <= 0 || o.ConfidenceLevel >= 1 {
		return DefaultConfidenceLevel
	}
	return o.ConfidenceLevel
}

func (o Options) alpha() float64 { return 1 - o.level() }

func (o Options) label(i int, fallback string) string {
	if i < len(o.Labels) && o.Labels[i] != "" {
		return o.Labels[i]
	}
	return fallback
}

// degenerate builds the conservative no-finding result every test returns
// when its input cannot support the math.
func degenerate(test analysis.TestType, opts Options, n int, reason string) analysis.HypothesisTestResult {
	return analysis.HypothesisTestResult{
		Test:           test,
		Statistic:      0,
		PValue:         1,
		Significant:    false,
		Signal:         analysis.SignalWeak,
		Alpha:          opts.alpha(),
		SampleSize:     n,
		Interpretation: reason,
	}
}
