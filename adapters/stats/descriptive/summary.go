package descriptive

import (
	"github.com/montanaflynn/stats"

	"goinsight/domain/analysis"
)

// Summary computes the descriptive block (mean, median, spread, range)
// for one numeric sample. Empty samples come back zeroed.
func Summary(sample []float64) analysis.SummaryStats {
	n := len(sample)
	if n == 0 {
		return analysis.SummaryStats{}
	}

	out := analysis.SummaryStats{N: n}
	out.Mean, _ = stats.Mean(sample)
	out.Median, _ = stats.Median(sample)
	out.Min, _ = stats.Min(sample)
	out.Max, _ = stats.Max(sample)
	out.Sum, _ = stats.Sum(sample)
	if n > 1 {
		out.StdDev, _ = stats.StandardDeviationSample(sample)
	}
	return out
}
