// Package descriptive covers the order-statistics side of the platform:
// percentile/outlier profiles, Pareto concentration and the plain summary
// block. Everything here is a pure function over one sample; empty input
// yields a zeroed result rather than an error.
package descriptive

import (
	"fmt"
	"sort"

	"goinsight/domain/analysis"
)

// percentileOf interpolates linearly between order statistics at the
// fractional rank (p/100)(n-1). The sample must already be sorted.
func percentileOf(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(rank)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Percentiles profiles one numeric sample: p10 through p99 by linear
// interpolation, IQR, Tukey fences at 1.5·IQR and the values outside them.
func Percentiles(sample []float64) analysis.PercentileResult {
	n := len(sample)
	if n == 0 {
		return analysis.PercentileResult{
			Interpretation: "no numeric values to profile",
		}
	}

	sorted := make([]float64, n)
	copy(sorted, sample)
	sort.Float64s(sorted)

	res := analysis.PercentileResult{
		SampleSize: n,
		P10:        percentileOf(sorted, 10),
		P25:        percentileOf(sorted, 25),
		P50:        percentileOf(sorted, 50),
		P75:        percentileOf(sorted, 75),
		P90:        percentileOf(sorted, 90),
		P95:        percentileOf(sorted, 95),
		P99:        percentileOf(sorted, 99),
	}
	res.IQR = res.P75 - res.P25
	res.LowerFence = res.P25 - 1.5*res.IQR
	res.UpperFence = res.P75 + 1.5*res.IQR

	for _, v := range sorted {
		if v < res.LowerFence || v > res.UpperFence {
			res.Outliers = append(res.Outliers, v)
		}
	}
	res.OutlierCount = len(res.Outliers)

	if res.OutlierCount > 0 {
		res.Interpretation = fmt.Sprintf("median %.4g, middle half spans %.4g to %.4g; %d value(s) fall outside the fences",
			res.P50, res.P25, res.P75, res.OutlierCount)
	} else {
		res.Interpretation = fmt.Sprintf("median %.4g, middle half spans %.4g to %.4g; no outliers",
			res.P50, res.P25, res.P75)
	}
	return res
}
