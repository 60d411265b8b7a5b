package hypothesis

import (
	"fmt"
	"math"
	"sort"

	"goinsight/adapters/stats/dist"
	"goinsight/domain/analysis"
	"goinsight/domain/core"
)

// ChiSquareIndependence tests whether two categorical columns are
// associated. x and y are paired label slices; a length mismatch is a
// caller bug and errors loudly, everything else degrades to a degenerate
// result. Effect size is Cramér's V.
func ChiSquareIndependence(x, y []string, opts Options) (analysis.HypothesisTestResult, error) {
	if len(x) != len(y) {
		return analysis.HypothesisTestResult{}, core.NewLengthMismatchError(len(x), len(y))
	}
	n := len(x)
	nameX := opts.label(0, "first column")
	nameY := opts.label(1, "second column")

	if n == 0 {
		return degenerate(analysis.TestChiSquare, opts, 0, "no paired observations"), nil
	}

	counts := make(map[string]map[string]int)
	rowTotals := make(map[string]int)
	colTotals := make(map[string]int)
	for i := 0; i < n; i++ {
		if counts[x[i]] == nil {
			counts[x[i]] = make(map[string]int)
		}
		counts[x[i]][y[i]]++
		rowTotals[x[i]]++
		colTotals[y[i]]++
	}

	rows := sortedKeys(rowTotals)
	cols := sortedKeys(colTotals)
	if len(rows) < 2 || len(cols) < 2 {
		return degenerate(analysis.TestChiSquare, opts, n,
			fmt.Sprintf("independence needs at least two levels on each side (%s has %d, %s has %d)",
				nameX, len(rows), nameY, len(cols))), nil
	}

	var chi2 float64
	total := float64(n)
	for _, r := range rows {
		for _, c := range cols {
			expected := float64(rowTotals[r]) * float64(colTotals[c]) / total
			if expected == 0 {
				continue
			}
			observed := float64(counts[r][c])
			diff := observed - expected
			chi2 += diff * diff / expected
		}
	}

	df := float64((len(rows) - 1) * (len(cols) - 1))
	pValue := dist.ChiSquarePValue(chi2, df)

	minDim := len(rows)
	if len(cols) < minDim {
		minDim = len(cols)
	}
	cramersV := 0.0
	if minDim > 1 {
		cramersV = sqrtNonNeg(chi2 / (total * float64(minDim-1)))
	}

	alpha := opts.alpha()
	res := analysis.HypothesisTestResult{
		Test:        analysis.TestChiSquare,
		Statistic:   chi2,
		PValue:      pValue,
		DF:          df,
		EffectSize:  cramersV,
		EffectUnit:  "cramers_v",
		Signal:      analysis.ClassifyEffect(cramersV),
		Significant: pValue < alpha,
		Alpha:       alpha,
		SampleSize:  n,
	}
	if res.Significant {
		res.Interpretation = fmt.Sprintf("%s and %s are associated with %s strength (chi2=%.3f, df=%.0f, p=%.3g, V=%.3f)",
			nameX, nameY, res.Signal, chi2, df, pValue, cramersV)
	} else {
		res.Interpretation = fmt.Sprintf("no detectable association between %s and %s (chi2=%.3f, df=%.0f, p=%.3g)",
			nameX, nameY, chi2, df, pValue)
	}
	return res, nil
}

func sqrtNonNeg(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Sqrt(x)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
