package hypothesis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"goinsight/domain/analysis"
)

// zScore maps a confidence level to its two-sided normal critical value,
// snapping to the nearest of the three supported levels.
func zScore(level float64) float64 {
	switch {
	case level > 0.97:
		return 2.576 // 99%
	case level > 0.925:
		return 1.96 // 95%
	default:
		return 1.645 // 90%
	}
}

// MeanConfidenceInterval bounds the sample mean at the given level using
// mean ± z·SE. Below 30 observations the margin is widened by 1+2/n to
// stand in for the heavier t tails. An empty sample returns a zeroed
// result, never an error.
func MeanConfidenceInterval(sample []float64, level float64) analysis.ConfidenceIntervalResult {
	if level <= 0 || level >= 1 {
		level = DefaultConfidenceLevel
	}
	n := len(sample)
	if n == 0 {
		return analysis.ConfidenceIntervalResult{
			Level:          level,
			Interpretation: "no data to bound",
		}
	}

	mean, _ := stats.Mean(sample)
	var sd float64
	if n > 1 {
		sd, _ = stats.StandardDeviationSample(sample)
	}
	se := sd / math.Sqrt(float64(n))
	margin := zScore(level) * se

	widened := false
	if n < 30 {
		margin *= 1 + 2/float64(n)
		widened = true
	}

	res := analysis.ConfidenceIntervalResult{
		Level:         level,
		Mean:          mean,
		Lower:         mean - margin,
		Upper:         mean + margin,
		MarginOfError: margin,
		StdErr:        se,
		SampleSize:    n,
		Widened:       widened,
	}
	res.Interpretation = fmt.Sprintf("the true mean lies between %.4g and %.4g with %.0f%% confidence (n=%d)",
		res.Lower, res.Upper, level*100, n)
	if widened {
		res.Interpretation += "; interval widened for the small sample"
	}
	return res
}
