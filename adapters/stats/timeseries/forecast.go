package timeseries

import (
	"math"

	"goinsight/domain/analysis"
)

// forecastZ puts ~95% bands around point forecasts.
const forecastZ = 1.96

// HoltForecast projects the series with double exponential smoothing.
// The uncertainty band grows with the horizon: one-step-ahead residuals
// set the base error, scaled by sqrt(steps ahead).
func HoltForecast(values []float64, horizon int, alpha, beta float64) []analysis.ForecastPoint {
	n := len(values)
	if n < 2 || horizon < 1 {
		return nil
	}

	level := values[0]
	trend := values[1] - values[0]
	var sse float64
	for i := 1; i < n; i++ {
		pred := level + trend
		resid := values[i] - pred
		sse += resid * resid

		next := alpha*values[i] + (1-alpha)*(level+trend)
		trend = beta*(next-level) + (1-beta)*trend
		level = next
	}
	stderr := math.Sqrt(sse / float64(n-1))

	out := make([]analysis.ForecastPoint, horizon)
	for h := 1; h <= horizon; h++ {
		value := level + float64(h)*trend
		margin := forecastZ * stderr * math.Sqrt(float64(h))
		out[h-1] = analysis.ForecastPoint{
			Step:  h,
			Value: value,
			Lower: value - margin,
			Upper: value + margin,
		}
	}
	return out
}

// LinearForecast projects an ordinary least squares line fit on the
// observation index, with prediction intervals that widen with leverage.
func LinearForecast(values []float64, horizon int) []analysis.ForecastPoint {
	n := len(values)
	if n < 2 || horizon < 1 {
		return nil
	}

	slope, intercept := linearFit(values)
	meanX := float64(n-1) / 2
	var sxx, sse float64
	for i, v := range values {
		dx := float64(i) - meanX
		sxx += dx * dx
		resid := v - (intercept + slope*float64(i))
		sse += resid * resid
	}
	var s float64
	if n > 2 {
		s = math.Sqrt(sse / float64(n-2))
	}

	out := make([]analysis.ForecastPoint, horizon)
	for h := 1; h <= horizon; h++ {
		x0 := float64(n - 1 + h)
		value := intercept + slope*x0
		var margin float64
		if sxx > 0 {
			dx := x0 - meanX
			margin = forecastZ * s * math.Sqrt(1+1/float64(n)+dx*dx/sxx)
		}
		out[h-1] = analysis.ForecastPoint{
			Step:  h,
			Value: value,
			Lower: value - margin,
			Upper: value + margin,
		}
	}
	return out
}

// linearFit regresses values on their index and returns slope and intercept.
func linearFit(values []float64) (slope, intercept float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}
	meanX := float64(n-1) / 2
	var meanY float64
	for _, v := range values {
		meanY += v
	}
	meanY /= float64(n)

	var sxx, sxy float64
	for i, v := range values {
		dx := float64(i) - meanX
		sxx += dx * dx
		sxy += dx * (v - meanY)
	}
	if sxx == 0 {
		return 0, meanY
	}
	slope = sxy / sxx
	intercept = meanY - slope*meanX
	return slope, intercept
}
