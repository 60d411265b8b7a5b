package hypothesis

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"goinsight/adapters/stats/dist"
	"goinsight/domain/analysis"
)

// OneWayANOVA tests whether three or more group means differ:
// F = MSB/MSW from between/within sums of squares, effect size
// eta-squared = SSB/(SSB+SSW). Groups with fewer than 2 members are
// dropped before the math.
func OneWayANOVA(groups map[string][]float64, opts Options) analysis.HypothesisTestResult {
	names := make([]string, 0, len(groups))
	for name, values := range groups {
		if len(values) >= 2 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	total := 0
	for _, values := range groups {
		total += len(values)
	}

	if len(names) < 2 {
		return degenerate(analysis.TestANOVA, opts, total,
			fmt.Sprintf("needs at least 2 groups with 2+ observations, found %d", len(names)))
	}

	var grandSum float64
	var n int
	summaries := make([]analysis.GroupSummary, 0, len(names))
	means := make(map[string]float64, len(names))
	for _, name := range names {
		values := groups[name]
		m, _ := stats.Mean(values)
		sd, _ := stats.StandardDeviationSample(values)
		means[name] = m
		summaries = append(summaries, analysis.GroupSummary{
			Name: name, N: len(values), Mean: m, StdDev: sd,
		})
		for _, v := range values {
			grandSum += v
		}
		n += len(values)
	}
	grandMean := grandSum / float64(n)

	var ssb, ssw float64
	for _, name := range names {
		values := groups[name]
		m := means[name]
		d := m - grandMean
		ssb += float64(len(values)) * d * d
		for _, v := range values {
			dv := v - m
			ssw += dv * dv
		}
	}

	dfB := float64(len(names) - 1)
	dfW := float64(n - len(names))

	if ssw == 0 || dfW <= 0 {
		res := degenerate(analysis.TestANOVA, opts, n,
			"zero within-group variance; group means cannot be tested")
		res.Groups = summaries
		return res
	}

	msb := ssb / dfB
	msw := ssw / dfW
	f := msb / msw
	pValue := dist.FTestPValue(f, dfB, dfW)

	eta := 0.0
	if ssb+ssw > 0 {
		eta = ssb / (ssb + ssw)
	}

	alpha := opts.alpha()
	res := analysis.HypothesisTestResult{
		Test:        analysis.TestANOVA,
		Statistic:   f,
		PValue:      pValue,
		DF:          dfB,
		DF2:         dfW,
		EffectSize:  eta,
		EffectUnit:  "eta_squared",
		Signal:      analysis.ClassifyEta(eta),
		Significant: pValue < alpha,
		Alpha:       alpha,
		SampleSize:  n,
		Groups:      summaries,
	}
	if res.Significant {
		hi, lo := extremeGroups(summaries)
		res.Interpretation = fmt.Sprintf("group means differ (F=%.3f, p=%.3g, eta2=%.3f); %s is highest at %.4g, %s lowest at %.4g",
			f, pValue, eta, hi.Name, hi.Mean, lo.Name, lo.Mean)
	} else {
		res.Interpretation = fmt.Sprintf("no significant difference across %d groups (F=%.3f, p=%.3g)",
			len(names), f, pValue)
	}
	return res
}

func extremeGroups(summaries []analysis.GroupSummary) (hi, lo analysis.GroupSummary) {
	hi, lo = summaries[0], summaries[0]
	for _, s := range summaries[1:] {
		if s.Mean > hi.Mean {
			hi = s
		}
		if s.Mean < lo.Mean {
			lo = s
		}
	}
	return hi, lo
}
