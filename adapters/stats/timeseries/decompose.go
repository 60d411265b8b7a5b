package timeseries

// Classical additive decomposition: a centered moving average estimates
// the trend, per-position means of the detrended series estimate the
// seasonal indices, and the leftover is the residual.

const maxSeasonLag = 52

// Decompose splits values into trend, seasonal and residual components.
// Needs at least two full cycles; callers with shorter series should fall
// back to MovingAverage. Trend edges, where the centered window does not
// fit, are filled with the nearest interior estimate so every slot holds
// a finite value.
func Decompose(values []float64, period int) (trend, seasonal, residual []float64) {
	n := len(values)
	if period < 2 || n < 2*period {
		return nil, nil, nil
	}

	half := period / 2
	trend = make([]float64, n)
	for i := half; i <= n-1-half; i++ {
		if period%2 == 0 {
			// even period: period+1 window with half weight on the ends
			sum := 0.5*values[i-half] + 0.5*values[i+half]
			for j := i - half + 1; j <= i+half-1; j++ {
				sum += values[j]
			}
			trend[i] = sum / float64(period)
		} else {
			sum := 0.0
			for j := i - half; j <= i+half; j++ {
				sum += values[j]
			}
			trend[i] = sum / float64(period)
		}
	}
	for i := 0; i < half; i++ {
		trend[i] = trend[half]
	}
	for i := n - half; i < n; i++ {
		trend[i] = trend[n-1-half]
	}

	sums := make([]float64, period)
	counts := make([]int, period)
	for i := half; i <= n-1-half; i++ {
		pos := i % period
		sums[pos] += values[i] - trend[i]
		counts[pos]++
	}
	indices := make([]float64, period)
	var total float64
	for pos := range indices {
		if counts[pos] > 0 {
			indices[pos] = sums[pos] / float64(counts[pos])
		}
		total += indices[pos]
	}
	// center the indices so the seasonal component sums to zero over a cycle
	center := total / float64(period)
	for pos := range indices {
		indices[pos] -= center
	}

	seasonal = make([]float64, n)
	residual = make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = indices[i%period]
		residual[i] = values[i] - trend[i] - seasonal[i]
	}
	return trend, seasonal, residual
}

// MovingAverage smooths with a centered window that shrinks at the edges,
// so the output has the same length as the input.
func MovingAverage(values []float64, window int) []float64 {
	n := len(values)
	if n == 0 {
		return nil
	}
	if window < 1 {
		window = 1
	}
	half := window / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		lo, hi := i-half, i+half
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// SeasonalityStrength scores how periodic a series is: the strongest
// autocorrelation across candidate lags, clamped to [0, 1].
func SeasonalityStrength(values []float64) float64 {
	n := len(values)
	if n < 4 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	var denom float64
	for _, v := range values {
		d := v - mean
		denom += d * d
	}
	if denom == 0 {
		return 0
	}

	maxLag := n / 2
	if maxLag > maxSeasonLag {
		maxLag = maxSeasonLag
	}
	best := 0.0
	for lag := 2; lag <= maxLag; lag++ {
		var num float64
		for i := 0; i+lag < n; i++ {
			num += (values[i] - mean) * (values[i+lag] - mean)
		}
		if r := num / denom; r > best {
			best = r
		}
	}
	if best > 1 {
		best = 1
	}
	if best < 0 {
		best = 0
	}
	return best
}
