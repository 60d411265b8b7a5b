package hypothesis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"goinsight/adapters/stats/dist"
	"goinsight/domain/analysis"
)

// WelchTTest compares two group means without assuming equal variances:
// t = (m1-m2)/sqrt(v1/n1+v2/n2) with Welch-Satterthwaite degrees of
// freedom and Cohen's d from the pooled standard deviation.
func WelchTTest(a, b []float64, opts Options) analysis.HypothesisTestResult {
	n1, n2 := float64(len(a)), float64(len(b))
	nameA := opts.label(0, "group 1")
	nameB := opts.label(1, "group 2")

	if n1 < 2 || n2 < 2 {
		return degenerate(analysis.TestWelchT, opts, len(a)+len(b),
			fmt.Sprintf("needs at least 2 observations per group (%s has %d, %s has %d)",
				nameA, len(a), nameB, len(b)))
	}

	m1, _ := stats.Mean(a)
	m2, _ := stats.Mean(b)
	v1, _ := stats.SampleVariance(a)
	v2, _ := stats.SampleVariance(b)

	se := math.Sqrt(v1/n1 + v2/n2)
	if se == 0 {
		return degenerate(analysis.TestWelchT, opts, len(a)+len(b),
			fmt.Sprintf("both groups have zero variance (%s=%.4g, %s=%.4g); means cannot be compared",
				nameA, m1, nameB, m2))
	}

	tStat := (m1 - m2) / se
	df := math.Pow(v1/n1+v2/n2, 2) /
		(math.Pow(v1/n1, 2)/(n1-1) + math.Pow(v2/n2, 2)/(n2-1))
	pValue := dist.TTestPValue(tStat, df)

	var effect float64
	pooledSD := math.Sqrt(((n1-1)*v1 + (n2-1)*v2) / (n1 + n2 - 2))
	if pooledSD > 0 {
		effect = (m1 - m2) / pooledSD
	}

	alpha := opts.alpha()
	res := analysis.HypothesisTestResult{
		Test:        analysis.TestWelchT,
		Statistic:   tStat,
		PValue:      pValue,
		DF:          df,
		EffectSize:  effect,
		EffectUnit:  "d",
		Signal:      analysis.ClassifyEffect(effect),
		Significant: pValue < alpha,
		Alpha:       alpha,
		SampleSize:  len(a) + len(b),
		Groups: []analysis.GroupSummary{
			{Name: nameA, N: len(a), Mean: m1, StdDev: math.Sqrt(v1)},
			{Name: nameB, N: len(b), Mean: m2, StdDev: math.Sqrt(v2)},
		},
	}
	res.Interpretation = welchInterpretation(res, nameA, nameB)
	return res
}

func welchInterpretation(r analysis.HypothesisTestResult, nameA, nameB string) string {
	if !r.Significant {
		return fmt.Sprintf("no significant difference between %s and %s (t=%.3f, p=%.3g, d=%.3f)",
			nameA, nameB, r.Statistic, r.PValue, r.EffectSize)
	}
	direction := "higher"
	if r.Statistic < 0 {
		direction = "lower"
	}
	return fmt.Sprintf("%s runs significantly %s than %s with a %s effect (t=%.3f, p=%.3g, d=%.3f)",
		nameA, direction, nameB, r.Signal, r.Statistic, r.PValue, r.EffectSize)
}
