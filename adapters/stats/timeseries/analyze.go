package timeseries

import (
	"fmt"
	"math"
	"time"

	"goinsight/domain/analysis"
	"goinsight/domain/core"
	"goinsight/domain/dataset"
)

const (
	defaultHorizon   = 6
	defaultAlpha     = 0.3
	defaultBeta      = 0.1
	defaultMinPoints = 4

	// relative change below this over the whole window counts as flat
	flatThreshold = 0.02
)

// Config tunes the temporal pipeline.
type Config struct {
	Horizon   int     // forecast steps past the last bucket
	Alpha     float64 // Holt level smoothing
	Beta      float64 // Holt trend smoothing
	MinPoints int     // minimum aggregated buckets to analyze
}

// DefaultConfig returns the settings auto analysis runs with.
func DefaultConfig() Config {
	return Config{
		Horizon:   defaultHorizon,
		Alpha:     defaultAlpha,
		Beta:      defaultBeta,
		MinPoints: defaultMinPoints,
	}
}

func (c Config) normalized() Config {
	if c.Horizon <= 0 {
		c.Horizon = defaultHorizon
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		c.Alpha = defaultAlpha
	}
	if c.Beta <= 0 || c.Beta >= 1 {
		c.Beta = defaultBeta
	}
	if c.MinPoints < 2 {
		c.MinPoints = defaultMinPoints
	}
	return c
}

// Analyze runs the full temporal pipeline for one date+value pair: parse,
// detect frequency, bucket, decompose (or smooth, when the series is too
// short for two full cycles), score seasonality, forecast and compute
// growth. Rows where either cell fails to parse are dropped. Too little
// usable data yields a degenerate result with an explanation, not an error.
func Analyze(ds *dataset.Dataset, dateCol, valueCol string, cfg Config) (analysis.TimeSeriesResult, error) {
	cfg = cfg.normalized()
	res := analysis.TimeSeriesResult{
		DateColumn:  dateCol,
		ValueColumn: valueCol,
		Frequency:   analysis.FreqIrregular,
	}

	if _, ok := ds.Column(dateCol); !ok {
		return res, core.NewUnknownColumnError(dateCol)
	}
	if _, ok := ds.Column(valueCol); !ok {
		return res, core.NewUnknownColumnError(valueCol)
	}

	points := make([]Point, 0, ds.RowCount())
	dates := make([]time.Time, 0, ds.RowCount())
	for i := 0; i < ds.RowCount(); i++ {
		t, ok := ParseDate(ds.Value(i, dateCol))
		if !ok {
			continue
		}
		v, ok := ds.Value(i, valueCol).Float()
		if !ok {
			continue
		}
		points = append(points, Point{At: t, Value: v})
		dates = append(dates, t)
	}

	if len(points) < cfg.MinPoints {
		res.TrendDirection = "flat"
		res.Interpretation = fmt.Sprintf("%s over %s: only %d usable observations, need at least %d",
			valueCol, dateCol, len(points), cfg.MinPoints)
		return res, nil
	}

	freq := DetectFrequency(dates)
	res.Frequency = freq
	res.Coverage = Coverage(dates, freq)

	series := aggregate(points, freq)
	res.Series = series
	if len(series) < cfg.MinPoints {
		res.TrendDirection = "flat"
		res.Interpretation = fmt.Sprintf("%s over %s: only %d %s buckets after aggregation, need at least %d",
			valueCol, dateCol, len(series), freq, cfg.MinPoints)
		return res, nil
	}

	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Value
	}

	period := seasonalPeriod(freq)
	if period >= 2 && len(values) >= 2*period {
		res.Trend, res.SeasonalComponent, res.Residual = Decompose(values, period)
	} else {
		window := period
		if window < 2 {
			window = 3
		}
		res.MovingAverage = MovingAverage(values, window)
	}

	res.SeasonalityStrength = SeasonalityStrength(values)

	slope, _ := linearFit(values)
	res.TrendDirection = trendDirection(values, slope)

	res.Forecast = HoltForecast(values, cfg.Horizon, cfg.Alpha, cfg.Beta)
	res.Growth = GrowthRates(series)

	res.Interpretation = interpret(res, values, cfg.Horizon)
	return res, nil
}

// trendDirection classifies the fitted slope by its total change over the
// window relative to the mean level.
func trendDirection(values []float64, slope float64) string {
	if len(values) < 2 {
		return "flat"
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	base := math.Abs(mean)
	if base == 0 {
		base = 1
	}
	total := slope * float64(len(values)-1)
	switch rel := total / base; {
	case rel > flatThreshold:
		return "increasing"
	case rel < -flatThreshold:
		return "decreasing"
	default:
		return "flat"
	}
}

func interpret(res analysis.TimeSeriesResult, values []float64, horizon int) string {
	n := len(values)
	first, last := values[0], values[n-1]

	var changeText string
	if first != 0 {
		changeText = fmt.Sprintf("%+.1f%% over the window", (last-first)/math.Abs(first)*100)
	} else {
		changeText = fmt.Sprintf("%+.4g over the window", last-first)
	}

	text := fmt.Sprintf("%s over %s: %d %s buckets, %s trend (%s)",
		res.ValueColumn, res.DateColumn, n, res.Frequency, res.TrendDirection, changeText)

	switch {
	case res.SeasonalityStrength >= 0.6:
		text += fmt.Sprintf("; strong seasonal pattern (strength %.2f)", res.SeasonalityStrength)
	case res.SeasonalityStrength >= 0.3:
		text += fmt.Sprintf("; moderate seasonal pattern (strength %.2f)", res.SeasonalityStrength)
	}

	if len(res.Forecast) > 0 {
		text += fmt.Sprintf("; next %d buckets projected around %.4g", horizon, res.Forecast[len(res.Forecast)-1].Value)
	}
	return text
}
