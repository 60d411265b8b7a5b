package timeseries

import "goinsight/domain/analysis"

// GrowthRates computes bucket-over-bucket change for an aggregated series.
// The first bucket has no predecessor, so the output is one shorter than
// the input. A zero previous value reports 0 percent rather than blowing
// up the division.
func GrowthRates(series []analysis.SeriesPoint) []analysis.GrowthRate {
	if len(series) < 2 {
		return nil
	}
	out := make([]analysis.GrowthRate, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev, cur := series[i-1], series[i]
		rate := analysis.GrowthRate{
			Period: cur.At,
			Value:  cur.Value,
			Change: cur.Value - prev.Value,
		}
		if prev.Value != 0 {
			rate.Percent = (cur.Value - prev.Value) / prev.Value * 100
		}
		out = append(out, rate)
	}
	return out
}
