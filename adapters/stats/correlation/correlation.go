// Package correlation computes Pearson and Spearman coefficients and the
// dataset-wide nonlinearity scan. Spearman uses average ranks for ties, so
// a monotonic but curved relationship shows up as |spearman| > |pearson|;
// the scan flags pairs where that gap crosses the configured threshold.
package correlation

import (
	"fmt"
	"math"
	"sort"

	"goinsight/adapters/stats/dist"
	"goinsight/domain/analysis"
	"goinsight/domain/core"
)

// Pearson returns the linear correlation of two paired samples. Fewer than
// 2 pairs or zero variance on either side yields 0; a length mismatch is a
// caller bug and errors.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, core.NewLengthMismatchError(len(x), len(y))
	}
	n := float64(len(x))
	if n < 2 {
		return 0, nil
	}

	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, nil
	}
	return cov / math.Sqrt(varX*varY), nil
}

// PValue converts a correlation coefficient into a two-sided p-value via
// the t transform t = r·sqrt((n-2)/(1-r²)).
func PValue(r float64, n int) float64 {
	if n < 3 {
		return 1
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	t := r * math.Sqrt(float64(n-2)/(1-r*r))
	return dist.TTestPValue(t, float64(n-2))
}

// ranks converts values to 1-based ranks, averaging within tie groups.
func ranks(values []float64) []float64 {
	n := len(values)
	if n == 0 {
		return nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	out := make([]float64, n)
	i := 0
	for i < n {
		j := i + 1
		for j < n && values[idx[j]] == values[idx[i]] {
			j++
		}
		// average the 1-based ranks across the tie group
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			out[idx[k]] = avg
		}
		i = j
	}
	return out
}

// Spearman returns the rank correlation of two paired samples with average
// ranks for ties.
func Spearman(x, y []float64) (analysis.SpearmanCorrelationResult, error) {
	if len(x) != len(y) {
		return analysis.SpearmanCorrelationResult{}, core.NewLengthMismatchError(len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return analysis.SpearmanCorrelationResult{
			N:              n,
			PValue:         1,
			Signal:         analysis.SignalWeak,
			Interpretation: "needs at least 2 paired observations",
		}, nil
	}

	rho, err := Pearson(ranks(x), ranks(y))
	if err != nil {
		return analysis.SpearmanCorrelationResult{}, err
	}
	res := analysis.SpearmanCorrelationResult{
		Rho:    rho,
		PValue: PValue(rho, n),
		N:      n,
		Signal: analysis.ClassifyEffect(rho),
	}
	res.Interpretation = fmt.Sprintf("%s monotonic association (rho=%.3f, p=%.3g, n=%d)",
		res.Signal, rho, res.PValue, n)
	return res, nil
}
