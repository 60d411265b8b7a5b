package app

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"goinsight/adapters/stats/cluster"
	"goinsight/adapters/stats/correlation"
	"goinsight/adapters/stats/descriptive"
	"goinsight/adapters/stats/hypothesis"
	"goinsight/adapters/stats/regression"
	"goinsight/adapters/stats/timeseries"
	"goinsight/domain/analysis"
	"goinsight/domain/core"
	"goinsight/domain/dataset"
)

// Analysis family names as they appear in logs and skip records.
const (
	analysisSummary     = "summary"
	analysisPercentiles = "percentiles"
	analysisIntervals   = "confidence_intervals"
	analysisTests       = "hypothesis_tests"
	analysisCorrelation = "correlation"
	analysisPareto      = "pareto"
	analysisClustering  = "clustering"
	analysisRegression  = "regression"
	analysisTimeSeries  = "time_series"
)

// AutoAnalysisConfig bounds the sweep on wide datasets.
type AutoAnalysisConfig struct {
	MaxColumns      int     // numeric columns fed to the wide analyses
	MinRows         int     // rows required for clustering and regression
	ConfidenceLevel float64 // shared by tests and intervals
	Parallelism     int     // concurrent analyses; 0 means GOMAXPROCS
	Seed            int64   // K-means seeding; 0 keeps the time-based source
}

// DefaultAutoAnalysisConfig returns the production sweep bounds.
func DefaultAutoAnalysisConfig() AutoAnalysisConfig {
	return AutoAnalysisConfig{
		MaxColumns:      5,
		MinRows:         10,
		ConfidenceLevel: 0.95,
	}
}

func (c AutoAnalysisConfig) normalized() AutoAnalysisConfig {
	d := DefaultAutoAnalysisConfig()
	if c.MaxColumns <= 0 {
		c.MaxColumns = d.MaxColumns
	}
	if c.MinRows <= 0 {
		c.MinRows = d.MinRows
	}
	if c.ConfidenceLevel <= 0 || c.ConfidenceLevel >= 1 {
		c.ConfidenceLevel = d.ConfidenceLevel
	}
	if c.Parallelism <= 0 {
		c.Parallelism = runtime.GOMAXPROCS(0)
	}
	return c
}

// AutoAnalysisService sweeps a dataset with every analysis its column
// census supports and assembles one report. Analyses run independently:
// a failure or a degenerate result in one never aborts the others, it is
// recorded on the report instead.
type AutoAnalysisService struct {
	log *slog.Logger
	cfg AutoAnalysisConfig
}

// NewAutoAnalysisService creates the orchestrator. A nil logger falls back
// to slog.Default.
func NewAutoAnalysisService(log *slog.Logger, cfg AutoAnalysisConfig) *AutoAnalysisService {
	if log == nil {
		log = slog.Default()
	}
	return &AutoAnalysisService{log: log, cfg: cfg.normalized()}
}

// Run plans analyses from the column census and executes them concurrently.
// The context gates scheduling only: an analysis that has started runs to
// completion, later ones are recorded as skipped.
func (s *AutoAnalysisService) Run(ctx context.Context, ds *dataset.Dataset) (*analysis.Report, error) {
	if ds == nil {
		return nil, fmt.Errorf("auto analysis: %w: nil dataset", core.ErrDegenerateInput)
	}

	started := time.Now()
	report := analysis.NewReport(ds.Fingerprint(), ds.RowCount())

	census := dataset.Describe(ds)
	allNumeric := census.NumericColumns()
	numeric := allNumeric
	if len(numeric) > s.cfg.MaxColumns {
		numeric = numeric[:s.cfg.MaxColumns]
	}

	// a column that profiles as a measure never doubles as a dimension,
	// even when its integer coding keeps the cardinality low
	isMeasure := make(map[string]bool, len(allNumeric))
	for _, col := range allNumeric {
		isMeasure[col] = true
	}
	var categorical []string
	for _, col := range census.CategoricalColumns() {
		if !isMeasure[col] {
			categorical = append(categorical, col)
		}
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(s.cfg.Parallelism)

	skip := func(name, reason string) {
		mu.Lock()
		report.Skip(name, reason)
		mu.Unlock()
		s.log.WarnContext(ctx, "analysis skipped",
			slog.String("analysis", name), slog.String("reason", reason))
	}
	schedule := func(name string, fn func() error) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				skip(name, "canceled before start")
				return nil
			}
			start := time.Now()
			s.log.DebugContext(ctx, "analysis start", slog.String("analysis", name))
			if err := fn(); err != nil {
				if core.IsStructuralError(err) {
					s.log.ErrorContext(ctx, "analysis hit a structural error",
						slog.String("analysis", name), slog.String("error", err.Error()))
				}
				skip(name, err.Error())
				return nil
			}
			s.log.InfoContext(ctx, "analysis done",
				slog.String("analysis", name),
				slog.Duration("elapsed", time.Since(start)))
			return nil
		})
	}

	if len(numeric) == 0 {
		skip(analysisSummary, "no numeric columns")
		skip(analysisPercentiles, "no numeric columns")
		skip(analysisIntervals, "no numeric columns")
	} else {
		schedule(analysisSummary, func() error {
			out := make([]analysis.ColumnSummary, 0, len(numeric))
			for _, col := range numeric {
				sample, err := ds.NumericColumn(col)
				if err != nil {
					return err
				}
				out = append(out, analysis.ColumnSummary{Column: col, Stats: descriptive.Summary(sample)})
			}
			mu.Lock()
			report.Summaries = out
			mu.Unlock()
			return nil
		})
		schedule(analysisPercentiles, func() error {
			out := make([]analysis.PercentileResult, 0, len(numeric))
			for _, col := range numeric {
				sample, err := ds.NumericColumn(col)
				if err != nil {
					return err
				}
				res := descriptive.Percentiles(sample)
				res.Column = col
				out = append(out, res)
			}
			mu.Lock()
			report.Percentiles = out
			mu.Unlock()
			return nil
		})
		schedule(analysisIntervals, func() error {
			out := make([]analysis.ConfidenceIntervalResult, 0, len(numeric))
			for _, col := range numeric {
				sample, err := ds.NumericColumn(col)
				if err != nil {
					return err
				}
				res := hypothesis.MeanConfidenceInterval(sample, s.cfg.ConfidenceLevel)
				res.Column = col
				out = append(out, res)
			}
			mu.Lock()
			report.Intervals = out
			mu.Unlock()
			return nil
		})
	}

	switch {
	case len(categorical) == 0:
		skip(analysisTests, "no categorical columns")
	case len(numeric) == 0 && len(categorical) < 2:
		skip(analysisTests, "needs a numeric column to compare or two categorical columns")
	default:
		schedule(analysisTests, s.runTests(ds, report, &mu, numeric, categorical))
	}

	if len(numeric) < 2 {
		skip(analysisCorrelation, "needs at least two numeric columns")
	} else {
		schedule(analysisCorrelation, func() error {
			res, err := correlation.Scan(ds, numeric, correlation.DefaultConfig())
			if err != nil {
				return err
			}
			mu.Lock()
			report.Correlations = &res
			mu.Unlock()
			return nil
		})
	}

	if len(categorical) == 0 || len(numeric) == 0 {
		skip(analysisPareto, "needs a categorical and a numeric column")
	} else {
		schedule(analysisPareto, func() error {
			measure := numeric[0]
			cats := categorical
			if len(cats) > s.cfg.MaxColumns {
				cats = cats[:s.cfg.MaxColumns]
			}
			out := make([]analysis.ParetoResult, 0, len(cats))
			for _, cat := range cats {
				labels, values, err := ds.LabeledColumn(cat, measure)
				if err != nil {
					return err
				}
				res, err := descriptive.ParetoFromPairs(labels, values)
				if err != nil {
					return err
				}
				res.Category = cat
				res.Measure = measure
				out = append(out, res)
			}
			mu.Lock()
			report.Pareto = out
			mu.Unlock()
			return nil
		})
	}

	switch {
	case len(numeric) < 2:
		skip(analysisClustering, "needs at least two numeric columns")
		skip(analysisRegression, "needs at least two numeric columns")
	case ds.RowCount() < s.cfg.MinRows:
		reason := fmt.Sprintf("needs at least %d rows, have %d", s.cfg.MinRows, ds.RowCount())
		skip(analysisClustering, reason)
		skip(analysisRegression, reason)
	default:
		schedule(analysisClustering, func() error {
			res, err := cluster.KMeans(ds, numeric, cluster.Config{Seed: s.cfg.Seed})
			if err != nil {
				return err
			}
			mu.Lock()
			report.Clusters = &res
			mu.Unlock()
			return nil
		})
		schedule(analysisRegression, func() error {
			res, err := regression.Fit(ds, numeric[0], numeric[1:], regression.Config{})
			if err != nil {
				return err
			}
			mu.Lock()
			report.Regression = &res
			mu.Unlock()
			return nil
		})
	}

	dateCols := timeseries.DetectDateColumns(ds)
	switch {
	case len(dateCols) == 0:
		skip(analysisTimeSeries, "no date column detected")
	case len(numeric) == 0:
		skip(analysisTimeSeries, "no numeric columns")
	default:
		schedule(analysisTimeSeries, func() error {
			dateCol := bestDateColumn(dateCols)
			out := make([]analysis.TimeSeriesResult, 0, len(numeric))
			for _, col := range numeric {
				if col == dateCol {
					continue
				}
				res, err := timeseries.Analyze(ds, dateCol, col, timeseries.DefaultConfig())
				if err != nil {
					return err
				}
				out = append(out, res)
			}
			mu.Lock()
			report.TimeSeries = out
			mu.Unlock()
			return nil
		})
	}

	// every task resolves its own failure into a skip record
	_ = g.Wait()

	report.RuntimeMS = time.Since(started).Milliseconds()
	s.log.InfoContext(ctx, "auto analysis complete",
		slog.String("report_id", report.ID.String()),
		slog.Int("rows", report.Rows),
		slog.Int("skipped", len(report.Skipped)),
		slog.Int64("runtime_ms", report.RuntimeMS))
	return report, nil
}

// runTests builds the hypothesis-test task: each categorical column is
// compared against the first numeric column (Welch at two observed levels,
// ANOVA at three or more), then the first two categorical columns are
// tested for independence.
func (s *AutoAnalysisService) runTests(ds *dataset.Dataset, report *analysis.Report, mu *sync.Mutex, numeric, categorical []string) func() error {
	return func() error {
		opts := hypothesis.Options{ConfidenceLevel: s.cfg.ConfidenceLevel}
		var out []analysis.HypothesisTestResult

		if len(numeric) > 0 {
			target := numeric[0]
			for _, cat := range categorical {
				labels, values, err := ds.LabeledColumn(cat, target)
				if err != nil {
					return err
				}
				groups := groupValues(labels, values)
				switch {
				case len(groups) == 2:
					names := sortedGroupNames(groups)
					welchOpts := opts
					welchOpts.Labels = names
					out = append(out, hypothesis.WelchTTest(groups[names[0]], groups[names[1]], welchOpts))
				case len(groups) >= 3:
					out = append(out, hypothesis.OneWayANOVA(groups, opts))
				}
			}
		}

		if len(categorical) >= 2 {
			xs, ys, err := ds.LabelPairs(categorical[0], categorical[1])
			if err != nil {
				return err
			}
			chiOpts := opts
			chiOpts.Labels = []string{categorical[0], categorical[1]}
			res, err := hypothesis.ChiSquareIndependence(xs, ys, chiOpts)
			if err != nil {
				return err
			}
			out = append(out, res)
		}

		mu.Lock()
		report.Tests = out
		mu.Unlock()
		return nil
	}
}

// groupValues buckets row-aligned (label, value) pairs by label.
func groupValues(labels []string, values []float64) map[string][]float64 {
	groups := make(map[string][]float64)
	for i, label := range labels {
		groups[label] = append(groups[label], values[i])
	}
	return groups
}

func sortedGroupNames(groups map[string][]float64) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// bestDateColumn picks the densest detected date dimension.
func bestDateColumn(scores []timeseries.DateColumnScore) string {
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Parsed > best.Parsed || (s.Parsed == best.Parsed && s.ParseRate > best.ParseRate) {
			best = s
		}
	}
	return best.Column
}
