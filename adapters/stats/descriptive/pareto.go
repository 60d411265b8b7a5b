package descriptive

import (
	"fmt"
	"math"
	"sort"

	"goinsight/domain/analysis"
	"goinsight/domain/core"
)

// vitalCutoff is the cumulative-share boundary of the "vital few".
const vitalCutoff = 0.80

// CategoryTotal is one pre-aggregated category for Pareto ranking.
type CategoryTotal struct {
	Label string
	Value float64
}

// Pareto ranks categories by absolute contribution and marks the vital few
// holding the first 80% of the total. The largest item is always vital,
// even when it alone exceeds the cutoff; a zero total returns an empty
// result labeled accordingly.
func Pareto(totals []CategoryTotal) analysis.ParetoResult {
	agg := make(map[string]float64, len(totals))
	for _, t := range totals {
		agg[t.Label] += math.Abs(t.Value)
	}

	items := make([]analysis.ParetoItem, 0, len(agg))
	var total float64
	for label, value := range agg {
		items = append(items, analysis.ParetoItem{Label: label, Value: value})
		total += value
	}

	if total == 0 || len(items) == 0 {
		return analysis.ParetoResult{
			Items:          nil,
			Total:          0,
			Interpretation: "no data: all category totals are zero",
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Value != items[j].Value {
			return items[i].Value > items[j].Value
		}
		return items[i].Label < items[j].Label
	})

	var cumulative float64
	res := analysis.ParetoResult{Total: total}
	for i := range items {
		cumulative += items[i].Value
		items[i].Share = items[i].Value / total
		items[i].CumulativeShare = cumulative / total
		items[i].Vital = items[i].CumulativeShare <= vitalCutoff
	}
	// the largest category is always vital
	items[0].Vital = true

	for _, it := range items {
		if it.Vital {
			res.VitalCount++
			res.VitalShare = it.CumulativeShare
		}
	}

	res.Items = items
	res.Interpretation = fmt.Sprintf("%d of %d categories account for %.0f%% of the total",
		res.VitalCount, len(items), res.VitalShare*100)
	return res
}

// ParetoFromPairs aggregates paired label/value slices and ranks them.
// Mismatched lengths are a caller bug and error loudly.
func ParetoFromPairs(labels []string, values []float64) (analysis.ParetoResult, error) {
	if len(labels) != len(values) {
		return analysis.ParetoResult{}, core.NewLengthMismatchError(len(labels), len(values))
	}
	totals := make([]CategoryTotal, len(labels))
	for i := range labels {
		totals[i] = CategoryTotal{Label: labels[i], Value: values[i]}
	}
	return Pareto(totals), nil
}
