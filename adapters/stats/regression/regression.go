// Package regression fits ordinary least squares models by solving the
// normal equations with the linalg Gauss-Jordan kernel. Collinear
// predictors and short samples come back as well-formed results carrying
// the reason, never as errors; only structural misuse (unknown column,
// mismatched lengths) errors loudly.
package regression

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"goinsight/adapters/stats/linalg"
	"goinsight/domain/analysis"
	"goinsight/domain/core"
	"goinsight/domain/dataset"
)

// tRatioCutoff is the rough significance rule |coefficient/stderr| > 2.
const tRatioCutoff = 2.0

// OLS regresses y on the predictor columns (one slice per observation,
// without the intercept column; the design matrix gains a leading column
// of ones here). names labels the predictors for the equation string.
func OLS(predictors [][]float64, y []float64, names []string, target string) (analysis.RegressionResult, error) {
	n := len(y)
	if len(predictors) != n {
		return analysis.RegressionResult{}, core.NewLengthMismatchError(len(predictors), n)
	}
	if target == "" {
		target = "y"
	}
	res := analysis.RegressionResult{Target: target, SampleSize: n}

	p := len(names)
	if n < p+2 {
		res.Interpretation = fmt.Sprintf("needs at least %d rows to fit %d predictor(s), got %d",
			p+2, p, n)
		return res, nil
	}

	design := make([][]float64, n)
	for i, row := range predictors {
		if len(row) != p {
			return analysis.RegressionResult{}, core.NewLengthMismatchError(len(row), p)
		}
		design[i] = append([]float64{1}, row...)
	}

	x, err := linalg.FromRows(design)
	if err != nil {
		return analysis.RegressionResult{}, err
	}
	xt := x.Transpose()
	xtx, err := xt.Mul(x)
	if err != nil {
		return analysis.RegressionResult{}, err
	}

	xtxInv, err := xtx.Inverse()
	if err != nil {
		if errors.Is(err, core.ErrSingularMatrix) {
			res.Interpretation = "cannot compute: predictors are collinear (singular normal equations)"
			return res, nil
		}
		return analysis.RegressionResult{}, err
	}

	xty, err := xt.MulVec(y)
	if err != nil {
		return analysis.RegressionResult{}, err
	}
	beta, err := xtxInv.MulVec(xty)
	if err != nil {
		return analysis.RegressionResult{}, err
	}

	var meanY float64
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(n)

	var sse, sst float64
	res.Residuals = make([]float64, n)
	for i := 0; i < n; i++ {
		pred := beta[0]
		for j := 0; j < p; j++ {
			pred += beta[j+1] * predictors[i][j]
		}
		r := y[i] - pred
		res.Residuals[i] = r
		sse += r * r
		dy := y[i] - meanY
		sst += dy * dy
	}

	if sst == 0 {
		res.Residuals = nil
		res.Interpretation = fmt.Sprintf("%s has zero variance; nothing to model", target)
		return res, nil
	}

	res.Intercept = beta[0]
	res.RSquared = 1 - sse/sst
	dfResidual := float64(n - p - 1)
	res.AdjRSquared = 1 - (1-res.RSquared)*float64(n-1)/dfResidual
	mse := sse / dfResidual

	res.Coefficients = make([]analysis.Coefficient, p)
	for j := 0; j < p; j++ {
		c := analysis.Coefficient{Name: names[j], Value: beta[j+1]}
		se := math.Sqrt(mse * xtxInv.At(j+1, j+1))
		c.StdError = se
		if se > 0 {
			c.TStat = c.Value / se
			c.Significant = math.Abs(c.TStat) > tRatioCutoff
		} else {
			// an exact fit has zero residual error; any nonzero term is real
			c.Significant = c.Value != 0
		}
		if c.Significant {
			res.SignificantPredictors = append(res.SignificantPredictors, c.Name)
		}
		res.Coefficients[j] = c
	}

	res.Equation = equation(target, res.Intercept, res.Coefficients)
	res.Interpretation = interpret(res)
	return res, nil
}

// Fit extracts target and predictor columns from the dataset, keeping only
// rows where every involved cell is numeric, and runs OLS.
func Fit(ds *dataset.Dataset, target string, predictors []string, cfg Config) (analysis.RegressionResult, error) {
	columns := append([]string{target}, predictors...)
	vectors, _, err := ds.NumericRows(columns)
	if err != nil {
		return analysis.RegressionResult{}, err
	}

	y := make([]float64, len(vectors))
	x := make([][]float64, len(vectors))
	for i, v := range vectors {
		y[i] = v[0]
		x[i] = v[1:]
	}
	res, err := OLS(x, y, predictors, target)
	if err != nil {
		return res, err
	}
	if !cfg.KeepResiduals {
		res.Residuals = nil
	}
	return res, nil
}

// Config bounds the fitted result. Residuals scale with the dataset, so
// dataset-level fits drop them unless asked.
type Config struct {
	KeepResiduals bool
}

func equation(target string, intercept float64, coefs []analysis.Coefficient) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %.4g", target, intercept)
	for _, c := range coefs {
		if c.Value < 0 {
			fmt.Fprintf(&b, " - %.4g*%s", -c.Value, c.Name)
		} else {
			fmt.Fprintf(&b, " + %.4g*%s", c.Value, c.Name)
		}
	}
	return b.String()
}

func interpret(r analysis.RegressionResult) string {
	pct := r.RSquared * 100
	if len(r.SignificantPredictors) == 0 {
		return fmt.Sprintf("model explains %.1f%% of the variance in %s; no predictor clears the significance bar",
			pct, r.Target)
	}
	return fmt.Sprintf("model explains %.1f%% of the variance in %s; driven by %s",
		pct, r.Target, strings.Join(r.SignificantPredictors, ", "))
}
