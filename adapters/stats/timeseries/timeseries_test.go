package timeseries

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goinsight/domain/analysis"
	"goinsight/domain/core"
	"goinsight/domain/dataset"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDateFormats(t *testing.T) {
	cases := []struct {
		name string
		in   dataset.Value
		want time.Time
	}{
		{"iso", dataset.NewString("2021-03-15"), day(2021, 3, 15)},
		{"iso slash", dataset.NewString("2021/03/15"), day(2021, 3, 15)},
		{"us slash", dataset.NewString("03/15/2021"), day(2021, 3, 15)},
		{"day first when month impossible", dataset.NewString("25/12/2021"), day(2021, 12, 25)},
		{"dotted", dataset.NewString("25.12.2021"), day(2021, 12, 25)},
		{"month name", dataset.NewString("Mar 15, 2021"), day(2021, 3, 15)},
		{"rfc3339", dataset.NewString("2021-03-15T10:30:00Z"), time.Date(2021, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"datetime", dataset.NewString("2021-03-15 10:30:00"), time.Date(2021, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"excel serial number", dataset.NewNumber(44197), day(2021, 1, 1)},
		{"excel serial string", dataset.NewString("44197"), day(2021, 1, 1)},
		{"native time", dataset.NewTime(day(2021, 3, 15)), day(2021, 3, 15)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDate(tc.in)
			require.True(t, ok)
			assert.True(t, got.Equal(tc.want), "got %v want %v", got, tc.want)
		})
	}
}

func TestParseDateRejectsNonDates(t *testing.T) {
	for name, v := range map[string]dataset.Value{
		"text":             dataset.NewString("hello"),
		"negative number":  dataset.NewNumber(-5),
		"zero":             dataset.NewNumber(0),
		"huge serial":      dataset.NewNumber(300000),
		"bool":             dataset.NewBool(true),
		"null":             dataset.Null(),
		"numeric overflow": dataset.NewString("999999999"),
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := ParseDate(v)
			assert.False(t, ok)
		})
	}
}

func TestDetectFrequency(t *testing.T) {
	daily := make([]time.Time, 10)
	for i := range daily {
		daily[i] = day(2024, 1, 1).AddDate(0, 0, i)
	}
	weekly := make([]time.Time, 10)
	for i := range weekly {
		weekly[i] = day(2024, 1, 1).AddDate(0, 0, 7*i)
	}
	monthly := make([]time.Time, 12)
	for i := range monthly {
		monthly[i] = day(2024, 1, 1).AddDate(0, i, 0)
	}
	quarterly := make([]time.Time, 8)
	for i := range quarterly {
		quarterly[i] = day(2023, 1, 1).AddDate(0, 3*i, 0)
	}
	yearly := make([]time.Time, 5)
	for i := range yearly {
		yearly[i] = day(2020, 1, 1).AddDate(i, 0, 0)
	}
	irregular := []time.Time{
		day(2024, 1, 1), day(2024, 1, 2), day(2024, 2, 11), day(2024, 2, 14), day(2024, 9, 1),
	}

	assert.Equal(t, analysis.FreqDaily, DetectFrequency(daily))
	assert.Equal(t, analysis.FreqWeekly, DetectFrequency(weekly))
	assert.Equal(t, analysis.FreqMonthly, DetectFrequency(monthly))
	assert.Equal(t, analysis.FreqQuarterly, DetectFrequency(quarterly))
	assert.Equal(t, analysis.FreqYearly, DetectFrequency(yearly))
	assert.Equal(t, analysis.FreqIrregular, DetectFrequency(irregular))
	assert.Equal(t, analysis.FreqIrregular, DetectFrequency(daily[:1]))
}

func TestDetectFrequencyIgnoresDuplicateDays(t *testing.T) {
	dates := []time.Time{
		day(2024, 1, 1), day(2024, 1, 1), day(2024, 1, 2),
		day(2024, 1, 3), day(2024, 1, 3), day(2024, 1, 4),
	}
	assert.Equal(t, analysis.FreqDaily, DetectFrequency(dates))
}

func TestCoverage(t *testing.T) {
	full := make([]time.Time, 10)
	for i := range full {
		full[i] = day(2024, 1, 1).AddDate(0, 0, i)
	}
	assert.InDelta(t, 1.0, Coverage(full, analysis.FreqDaily), 1e-9)

	sparse := make([]time.Time, 10)
	for i := range sparse {
		sparse[i] = day(2024, 1, 1).AddDate(0, 0, 2*i)
	}
	cov := Coverage(sparse, analysis.FreqDaily)
	assert.Less(t, cov, 0.6)
	assert.Greater(t, cov, 0.4)

	assert.Zero(t, Coverage(full, analysis.FreqIrregular))
	assert.Zero(t, Coverage(full[:1], analysis.FreqDaily))
}

func TestAggregateSumsBucketsInOrder(t *testing.T) {
	points := []Point{
		{At: day(2021, 2, 3), Value: 7},
		{At: day(2021, 1, 20), Value: 5},
		{At: day(2021, 1, 5), Value: 10},
	}
	series := aggregate(points, analysis.FreqMonthly)

	require.Len(t, series, 2)
	assert.Equal(t, "2021-01", series[0].At)
	assert.InDelta(t, 15.0, series[0].Value, 1e-9)
	assert.Equal(t, "2021-02", series[1].At)
	assert.InDelta(t, 7.0, series[1].Value, 1e-9)
}

func TestBucketLabels(t *testing.T) {
	ts := day(2021, 2, 10)
	assert.Equal(t, "2021-02-10", bucketLabel(bucketStart(ts, analysis.FreqDaily), analysis.FreqDaily))
	assert.Equal(t, "2021-W06", bucketLabel(bucketStart(ts, analysis.FreqWeekly), analysis.FreqWeekly))
	assert.Equal(t, "2021-02", bucketLabel(bucketStart(ts, analysis.FreqMonthly), analysis.FreqMonthly))
	assert.Equal(t, "2021-Q1", bucketLabel(bucketStart(ts, analysis.FreqQuarterly), analysis.FreqQuarterly))
	assert.Equal(t, "2021", bucketLabel(bucketStart(ts, analysis.FreqYearly), analysis.FreqYearly))
}

func TestWeeklyBucketStartsOnMonday(t *testing.T) {
	// 2021-02-10 is a Wednesday; its week starts Monday 2021-02-08.
	start := bucketStart(day(2021, 2, 10), analysis.FreqWeekly)
	assert.Equal(t, day(2021, 2, 8), start)
	assert.Equal(t, time.Monday, start.Weekday())
}

func TestDecomposeRecoversTrendAndSeason(t *testing.T) {
	const n, period = 48, 12
	values := make([]float64, n)
	for i := range values {
		values[i] = 10 + 2*float64(i) + 5*math.Sin(2*math.Pi*float64(i)/period)
	}

	trend, seasonal, residual := Decompose(values, period)
	require.Len(t, trend, n)
	require.Len(t, seasonal, n)
	require.Len(t, residual, n)

	// the centered window cancels the sine exactly, so the interior trend
	// is the bare line and the interior residual vanishes
	for i := period / 2; i <= n-1-period/2; i++ {
		assert.InDelta(t, 10+2*float64(i), trend[i], 1e-9, "trend at %d", i)
		assert.InDelta(t, 0, residual[i], 1e-9, "residual at %d", i)
	}

	var cycle float64
	for pos := 0; pos < period; pos++ {
		cycle += seasonal[pos]
		assert.InDelta(t, 5*math.Sin(2*math.Pi*float64(pos)/period), seasonal[pos], 1e-9, "seasonal at %d", pos)
	}
	assert.InDelta(t, 0, cycle, 1e-9)

	// filled edges stay finite
	for i := 0; i < n; i++ {
		assert.False(t, math.IsNaN(trend[i]) || math.IsInf(trend[i], 0), "trend at %d", i)
	}
	assert.InDelta(t, trend[period/2], trend[0], 1e-9)
	assert.InDelta(t, trend[n-1-period/2], trend[n-1], 1e-9)
}

func TestDecomposeTooShort(t *testing.T) {
	trend, seasonal, residual := Decompose([]float64{1, 2, 3, 4, 5}, 12)
	assert.Nil(t, trend)
	assert.Nil(t, seasonal)
	assert.Nil(t, residual)
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4, 5}, 3)
	want := []float64{1.5, 2, 3, 4, 4.5}
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9)
	}
	assert.Nil(t, MovingAverage(nil, 3))
}

func TestSeasonalityStrength(t *testing.T) {
	const n, period = 96, 12
	sine := make([]float64, n)
	for i := range sine {
		sine[i] = math.Sin(2 * math.Pi * float64(i) / period)
	}
	assert.Greater(t, SeasonalityStrength(sine), 0.8)

	flat := make([]float64, n)
	for i := range flat {
		flat[i] = 42
	}
	assert.Zero(t, SeasonalityStrength(flat))

	assert.Zero(t, SeasonalityStrength([]float64{1, 2}))
}

func trendingSeries(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		wiggle := 3.0
		if i%2 == 1 {
			wiggle = -3.0
		}
		values[i] = 100 + 10*float64(i) + wiggle
	}
	return values
}

func TestHoltForecastTrendsUpWithWideningBands(t *testing.T) {
	values := trendingSeries(24)
	forecast := HoltForecast(values, 6, 0.3, 0.1)
	require.Len(t, forecast, 6)

	last := values[len(values)-1]
	prevValue := last
	prevWidth := 0.0
	for i, f := range forecast {
		assert.Equal(t, i+1, f.Step)
		assert.Greater(t, f.Value, prevValue, "step %d should keep climbing", f.Step)
		width := f.Upper - f.Lower
		assert.Greater(t, width, prevWidth, "band at step %d should widen", f.Step)
		assert.LessOrEqual(t, f.Lower, f.Value)
		assert.GreaterOrEqual(t, f.Upper, f.Value)
		prevValue = f.Value
		prevWidth = width
	}

	assert.Nil(t, HoltForecast(values[:1], 6, 0.3, 0.1))
}

func TestLinearForecastExactLine(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		values[i] = 5 + 2*float64(i)
	}
	forecast := LinearForecast(values, 3)
	require.Len(t, forecast, 3)
	for h, f := range forecast {
		want := 5 + 2*float64(9+h+1)
		assert.InDelta(t, want, f.Value, 1e-9)
		// a perfect fit has zero residual error, so the band collapses
		assert.InDelta(t, want, f.Lower, 1e-9)
		assert.InDelta(t, want, f.Upper, 1e-9)
	}
}

func TestLinearForecastNoisyBandsWiden(t *testing.T) {
	forecast := LinearForecast(trendingSeries(24), 6)
	require.Len(t, forecast, 6)
	prevWidth := 0.0
	for _, f := range forecast {
		width := f.Upper - f.Lower
		assert.Greater(t, width, prevWidth)
		prevWidth = width
	}
}

func TestGrowthRates(t *testing.T) {
	series := []analysis.SeriesPoint{
		{At: "2024-01", Value: 100},
		{At: "2024-02", Value: 150},
		{At: "2024-03", Value: 0},
		{At: "2024-04", Value: 30},
	}
	growth := GrowthRates(series)
	require.Len(t, growth, 3)

	assert.Equal(t, "2024-02", growth[0].Period)
	assert.InDelta(t, 50.0, growth[0].Change, 1e-9)
	assert.InDelta(t, 50.0, growth[0].Percent, 1e-9)

	assert.InDelta(t, -150.0, growth[1].Change, 1e-9)
	assert.InDelta(t, -100.0, growth[1].Percent, 1e-9)

	// previous bucket was zero: report the change but not a percentage
	assert.InDelta(t, 30.0, growth[2].Change, 1e-9)
	assert.Zero(t, growth[2].Percent)

	assert.Nil(t, GrowthRates(series[:1]))
}

func monthlyRevenueDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	columns := []dataset.Column{
		{Name: "month", Type: dataset.TypeString},
		{Name: "revenue", Type: dataset.TypeNumber},
	}
	rows := make([]dataset.Row, 0, 26)
	for i := 0; i < 24; i++ {
		wiggle := 3.0
		if i%2 == 1 {
			wiggle = -3.0
		}
		at := day(2023, 1, 15).AddDate(0, i, 0)
		rows = append(rows, dataset.Row{
			"month":   dataset.NewString(at.Format("2006-01-02")),
			"revenue": dataset.NewNumber(100 + 10*float64(i) + wiggle),
		})
	}
	// unusable rows: bad date, missing value
	rows = append(rows,
		dataset.Row{"month": dataset.NewString("not a date"), "revenue": dataset.NewNumber(999)},
		dataset.Row{"month": dataset.NewString("2023-06-01"), "revenue": dataset.Null()},
	)
	ds, err := dataset.New(columns, rows)
	require.NoError(t, err)
	return ds
}

func TestAnalyzeMonthlyRevenue(t *testing.T) {
	ds := monthlyRevenueDataset(t)
	res, err := Analyze(ds, "month", "revenue", DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, analysis.FreqMonthly, res.Frequency)
	assert.InDelta(t, 1.0, res.Coverage, 1e-9)
	require.Len(t, res.Series, 24)
	assert.Equal(t, "2023-01", res.Series[0].At)
	assert.Equal(t, "2024-12", res.Series[23].At)

	// 24 monthly buckets cover two full cycles, enough for decomposition
	require.Len(t, res.Trend, 24)
	require.Len(t, res.SeasonalComponent, 24)
	require.Len(t, res.Residual, 24)
	assert.Nil(t, res.MovingAverage)

	assert.Equal(t, "increasing", res.TrendDirection)
	assert.Contains(t, res.Interpretation, "increasing")

	require.Len(t, res.Forecast, 6)
	prev := res.Series[23].Value
	for _, f := range res.Forecast {
		assert.Greater(t, f.Value, prev)
		prev = f.Value
	}

	require.Len(t, res.Growth, 23)
	assert.Equal(t, "2023-02", res.Growth[0].Period)
}

func TestAnalyzeShortSeriesFallsBackToMovingAverage(t *testing.T) {
	columns := []dataset.Column{
		{Name: "month", Type: dataset.TypeString},
		{Name: "units", Type: dataset.TypeNumber},
	}
	rows := make([]dataset.Row, 0, 8)
	for i := 0; i < 8; i++ {
		at := day(2024, 1, 1).AddDate(0, i, 0)
		rows = append(rows, dataset.Row{
			"month": dataset.NewString(at.Format("2006-01-02")),
			"units": dataset.NewNumber(float64(50 - i)),
		})
	}
	ds, err := dataset.New(columns, rows)
	require.NoError(t, err)

	res, err := Analyze(ds, "month", "units", DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, analysis.FreqMonthly, res.Frequency)
	assert.Nil(t, res.Trend)
	require.Len(t, res.MovingAverage, 8)
	assert.Equal(t, "decreasing", res.TrendDirection)
}

func TestAnalyzeTooFewPoints(t *testing.T) {
	columns := []dataset.Column{
		{Name: "day", Type: dataset.TypeString},
		{Name: "n", Type: dataset.TypeNumber},
	}
	rows := []dataset.Row{
		{"day": dataset.NewString("2024-01-01"), "n": dataset.NewNumber(1)},
		{"day": dataset.NewString("2024-01-02"), "n": dataset.NewNumber(2)},
		{"day": dataset.NewString("garbage"), "n": dataset.NewNumber(3)},
	}
	ds, err := dataset.New(columns, rows)
	require.NoError(t, err)

	res, err := Analyze(ds, "day", "n", DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, res.Series)
	assert.Contains(t, res.Interpretation, "only 2 usable observations")
}

func TestAnalyzeUnknownColumn(t *testing.T) {
	ds := monthlyRevenueDataset(t)
	_, err := Analyze(ds, "nope", "revenue", DefaultConfig())
	require.ErrorIs(t, err, core.ErrUnknownColumn)
	_, err = Analyze(ds, "month", "nope", DefaultConfig())
	require.ErrorIs(t, err, core.ErrUnknownColumn)
}

func TestDetectDateColumnsFromDataset(t *testing.T) {
	columns := []dataset.Column{
		{Name: "day", Type: dataset.TypeString},
		{Name: "joined", Type: dataset.TypeDate},
		{Name: "amount", Type: dataset.TypeNumber},
		{Name: "note", Type: dataset.TypeString},
	}
	rows := make([]dataset.Row, 0, 6)
	for i := 0; i < 6; i++ {
		rows = append(rows, dataset.Row{
			"day":    dataset.NewString(fmt.Sprintf("2024-01-%02d", i+1)),
			"joined": dataset.NewTime(day(2023, 5, i+1)),
			"amount": dataset.NewNumber(float64(44197 + i)), // serial-range numbers stay measures
			"note":   dataset.NewString("hello"),
		})
	}
	ds, err := dataset.New(columns, rows)
	require.NoError(t, err)

	scores := DetectDateColumns(ds)
	names := make([]string, 0, len(scores))
	for _, s := range scores {
		names = append(names, s.Column)
		assert.True(t, s.Qualifies())
		assert.InDelta(t, 1.0, s.ParseRate, 1e-9)
	}
	assert.ElementsMatch(t, []string{"day", "joined"}, names)
}

func TestDetectDateColumnsParseRateCutoff(t *testing.T) {
	columns := []dataset.Column{{Name: "mixed", Type: dataset.TypeString}}
	rows := []dataset.Row{
		{"mixed": dataset.NewString("2024-01-01")},
		{"mixed": dataset.NewString("2024-01-02")},
		{"mixed": dataset.NewString("red")},
		{"mixed": dataset.NewString("green")},
	}
	ds, err := dataset.New(columns, rows)
	require.NoError(t, err)

	assert.Empty(t, DetectDateColumns(ds))
}
