package correlation

import (
	"fmt"
	"math"
	"sort"

	"goinsight/domain/analysis"
	"goinsight/domain/dataset"
)

// Config carries the scan thresholds. The gap and floor values are
// empirical tuning constants, kept configurable on purpose.
type Config struct {
	MinPairs    int     // complete observation pairs required per column pair
	MinReport   float64 // report a pair when max(|r|, |rho|) reaches this
	Gap         float64 // flag non-linear when |rho| - |r| exceeds this
	MinSpearman float64 // ...and |rho| also reaches this
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{MinPairs: 10, MinReport: 0.3, Gap: 0.15, MinSpearman: 0.4}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.MinPairs <= 0 {
		c.MinPairs = d.MinPairs
	}
	if c.MinReport <= 0 {
		c.MinReport = d.MinReport
	}
	if c.Gap <= 0 {
		c.Gap = d.Gap
	}
	if c.MinSpearman <= 0 {
		c.MinSpearman = d.MinSpearman
	}
	return c
}

// Scan correlates every pair of the named numeric columns and reports the
// pairs worth looking at, strongest rank correlation first. A pair is
// flagged non-linear when Spearman clearly outruns Pearson, the signature
// of a monotonic but curved relationship.
func Scan(ds *dataset.Dataset, columns []string, cfg Config) (analysis.CorrelationResult, error) {
	cfg = cfg.normalized()

	var pairs []analysis.CorrelationPair
	examined := 0
	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			xs, ys, err := ds.PairedColumns(columns[i], columns[j])
			if err != nil {
				return analysis.CorrelationResult{}, err
			}
			if len(xs) < cfg.MinPairs {
				continue
			}
			examined++

			r, err := Pearson(xs, ys)
			if err != nil {
				return analysis.CorrelationResult{}, err
			}
			sp, err := Spearman(xs, ys)
			if err != nil {
				return analysis.CorrelationResult{}, err
			}
			rho := sp.Rho

			if math.Max(math.Abs(r), math.Abs(rho)) < cfg.MinReport {
				continue
			}
			pairs = append(pairs, analysis.CorrelationPair{
				X:         columns[i],
				Y:         columns[j],
				Pearson:   r,
				Spearman:  rho,
				PValue:    sp.PValue,
				N:         len(xs),
				Signal:    analysis.ClassifyEffect(rho),
				NonLinear: math.Abs(rho)-math.Abs(r) > cfg.Gap && math.Abs(rho) > cfg.MinSpearman,
			})
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return math.Abs(pairs[a].Spearman) > math.Abs(pairs[b].Spearman)
	})

	res := analysis.CorrelationResult{Pairs: pairs, Examined: examined}
	nonLinear := 0
	for _, p := range pairs {
		if p.NonLinear {
			nonLinear++
		}
	}
	switch {
	case examined == 0:
		res.Interpretation = "no column pair had enough complete observations to correlate"
	case len(pairs) == 0:
		res.Interpretation = fmt.Sprintf("%d pair(s) examined, none correlated at |rho| >= %.2f", examined, cfg.MinReport)
	default:
		res.Interpretation = fmt.Sprintf("%d of %d pair(s) show correlation, %d with non-linear shape",
			len(pairs), examined, nonLinear)
	}
	return res, nil
}
