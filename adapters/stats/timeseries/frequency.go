package timeseries

import (
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"goinsight/domain/analysis"
)

// Point is one raw observation before bucketing.
type Point struct {
	At    time.Time
	Value float64
}

// day-range buckets for the median gap between consecutive unique dates
const (
	maxDailyGap      = 1.5
	minWeeklyGap     = 6
	maxWeeklyGap     = 8
	minMonthlyGap    = 27
	maxMonthlyGap    = 33
	minQuarterlyGap  = 85
	maxQuarterlyGap  = 95
	minYearlyGap     = 350
	maxYearlyGap     = 380
	minCoverageRatio = 0.6
)

// DetectFrequency infers the series spacing from the median day gap
// between consecutive unique dates.
func DetectFrequency(dates []time.Time) analysis.Frequency {
	unique := uniqueDays(dates)
	if len(unique) < 2 {
		return analysis.FreqIrregular
	}

	gaps := make([]float64, 0, len(unique)-1)
	for i := 1; i < len(unique); i++ {
		gaps = append(gaps, unique[i].Sub(unique[i-1]).Hours()/24)
	}
	median, err := stats.Median(gaps)
	if err != nil {
		return analysis.FreqIrregular
	}

	switch {
	case median <= maxDailyGap:
		return analysis.FreqDaily
	case median >= minWeeklyGap && median <= maxWeeklyGap:
		return analysis.FreqWeekly
	case median >= minMonthlyGap && median <= maxMonthlyGap:
		return analysis.FreqMonthly
	case median >= minQuarterlyGap && median <= maxQuarterlyGap:
		return analysis.FreqQuarterly
	case median >= minYearlyGap && median <= maxYearlyGap:
		return analysis.FreqYearly
	default:
		return analysis.FreqIrregular
	}
}

// periodDays is the nominal bucket width used for coverage math.
func periodDays(freq analysis.Frequency) float64 {
	switch freq {
	case analysis.FreqDaily:
		return 1
	case analysis.FreqWeekly:
		return 7
	case analysis.FreqMonthly:
		return 30.4375
	case analysis.FreqQuarterly:
		return 91.3125
	case analysis.FreqYearly:
		return 365.25
	default:
		return 0
	}
}

// seasonalPeriod maps a frequency to the cycle length decomposition uses.
func seasonalPeriod(freq analysis.Frequency) int {
	switch freq {
	case analysis.FreqDaily:
		return 7
	case analysis.FreqWeekly:
		return 52
	case analysis.FreqMonthly:
		return 12
	case analysis.FreqQuarterly:
		return 4
	default:
		return 0
	}
}

// Coverage compares the unique dates seen against the bucket count the
// span should hold at the detected frequency, answering "is this really a
// date dimension". At or above 0.6 the column is trusted.
func Coverage(dates []time.Time, freq analysis.Frequency) float64 {
	width := periodDays(freq)
	unique := uniqueDays(dates)
	if width == 0 || len(unique) < 2 {
		return 0
	}
	span := unique[len(unique)-1].Sub(unique[0]).Hours() / 24
	expected := span/width + 1
	cov := float64(len(unique)) / expected
	if cov > 1 {
		cov = 1
	}
	return cov
}

func uniqueDays(dates []time.Time) []time.Time {
	seen := make(map[int64]time.Time, len(dates))
	for _, d := range dates {
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		seen[day.Unix()] = day
	}
	out := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// bucketStart floors a timestamp to its period boundary.
func bucketStart(t time.Time, freq analysis.Frequency) time.Time {
	t = t.UTC()
	switch freq {
	case analysis.FreqWeekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7 // Monday start
		return day.AddDate(0, 0, -offset)
	case analysis.FreqMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case analysis.FreqQuarterly:
		q := (int(t.Month()) - 1) / 3
		return time.Date(t.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
	case analysis.FreqYearly:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// bucketLabel renders the period key shown in results.
func bucketLabel(start time.Time, freq analysis.Frequency) string {
	switch freq {
	case analysis.FreqWeekly:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case analysis.FreqMonthly:
		return start.Format("2006-01")
	case analysis.FreqQuarterly:
		return fmt.Sprintf("%d-Q%d", start.Year(), (int(start.Month())-1)/3+1)
	case analysis.FreqYearly:
		return start.Format("2006")
	default:
		return start.Format("2006-01-02")
	}
}

// aggregate sums duplicate observations into period buckets and returns
// them in time order.
func aggregate(points []Point, freq analysis.Frequency) []analysis.SeriesPoint {
	type bucket struct {
		start time.Time
		value float64
	}
	byStart := make(map[int64]*bucket, len(points))
	for _, p := range points {
		start := bucketStart(p.At, freq)
		key := start.Unix()
		if b, ok := byStart[key]; ok {
			b.value += p.Value
		} else {
			byStart[key] = &bucket{start: start, value: p.Value}
		}
	}

	buckets := make([]*bucket, 0, len(byStart))
	for _, b := range byStart {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].start.Before(buckets[j].start) })

	out := make([]analysis.SeriesPoint, len(buckets))
	for i, b := range buckets {
		out[i] = analysis.SeriesPoint{At: bucketLabel(b.start, freq), Value: b.value}
	}
	return out
}
