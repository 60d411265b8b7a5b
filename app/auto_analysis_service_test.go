package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"goinsight/domain/analysis"
	"goinsight/domain/core"
	"goinsight/domain/dataset"
	"goinsight/internal/testkit"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func retailService(t *testing.T) (*AutoAnalysisService, *dataset.Dataset) {
	t.Helper()
	ds, err := testkit.RetailDataset(testkit.DefaultRetailConfig())
	require.NoError(t, err)
	cfg := DefaultAutoAnalysisConfig()
	cfg.Seed = 7
	return NewAutoAnalysisService(discardLogger(), cfg), ds
}

func TestRunRetailDatasetCoversEveryFamily(t *testing.T) {
	svc, ds := retailService(t)

	report, err := svc.Run(context.Background(), ds)
	require.NoError(t, err)
	require.NotNil(t, report)

	// the retail fixture qualifies for every analysis, so nothing skips
	require.Empty(t, report.Skipped)
	require.Equal(t, 240, report.Rows)
	require.Equal(t, ds.Fingerprint(), report.Fingerprint)

	require.Len(t, report.Summaries, 3)
	require.Equal(t, "revenue", report.Summaries[0].Column)
	require.Equal(t, 240, report.Summaries[0].Stats.N)

	require.Len(t, report.Percentiles, 3)
	require.Equal(t, "revenue", report.Percentiles[0].Column)

	require.Len(t, report.Intervals, 3)
	for _, ci := range report.Intervals {
		require.InDelta(t, 0.95, ci.Level, 1e-9)
		require.Less(t, ci.Lower, ci.Upper)
	}

	// region has four levels (ANOVA), channel two (Welch), and the two
	// dimensions together feed the independence test
	require.Len(t, report.Tests, 3)
	byType := map[analysis.TestType]analysis.HypothesisTestResult{}
	for _, tr := range report.Tests {
		byType[tr.Test] = tr
	}
	require.Contains(t, byType, analysis.TestANOVA)
	require.Contains(t, byType, analysis.TestWelchT)
	require.Contains(t, byType, analysis.TestChiSquare)
	require.True(t, byType[analysis.TestANOVA].Significant, "region effect is built into the fixture")
	require.True(t, byType[analysis.TestWelchT].Significant, "channel effect is built into the fixture")

	require.NotNil(t, report.Correlations)
	require.Equal(t, 3, report.Correlations.Examined)
	require.GreaterOrEqual(t, len(report.Correlations.Pairs), 2)

	require.Len(t, report.Pareto, 2)
	require.Equal(t, "region", report.Pareto[0].Category)
	require.Equal(t, "revenue", report.Pareto[0].Measure)

	require.NotNil(t, report.Clusters)
	require.Equal(t, []string{"revenue", "units", "discount"}, report.Clusters.Features)
	require.Equal(t, 240, report.Clusters.SampleSize)

	require.NotNil(t, report.Regression)
	require.Equal(t, "revenue", report.Regression.Target)
	require.Len(t, report.Regression.Coefficients, 2)

	require.Len(t, report.TimeSeries, 3)
	rev := report.TimeSeries[0]
	require.Equal(t, "order_date", rev.DateColumn)
	require.Equal(t, "revenue", rev.ValueColumn)
	require.Equal(t, analysis.FreqDaily, rev.Frequency)
	require.InDelta(t, 1.0, rev.Coverage, 1e-9)
	require.Len(t, rev.Series, 120) // two orders per day sum into one bucket
	require.NotEmpty(t, rev.Trend)
	require.Equal(t, "increasing", rev.TrendDirection)
	require.Len(t, rev.Forecast, 6)
	require.Len(t, rev.Growth, 119)
}

func TestRunNilDataset(t *testing.T) {
	svc := NewAutoAnalysisService(discardLogger(), DefaultAutoAnalysisConfig())
	_, err := svc.Run(context.Background(), nil)
	require.ErrorIs(t, err, core.ErrDegenerateInput)
}

func TestRunCategoricalOnlyDatasetSkipsEverything(t *testing.T) {
	columns := []dataset.Column{{Name: "segment", Type: dataset.TypeString}}
	rows := make([]dataset.Row, 12)
	for i := range rows {
		label := "a"
		if i%2 == 1 {
			label = "b"
		}
		rows[i] = dataset.Row{"segment": dataset.NewString(label)}
	}
	ds, err := dataset.New(columns, rows)
	require.NoError(t, err)

	svc := NewAutoAnalysisService(discardLogger(), DefaultAutoAnalysisConfig())
	report, err := svc.Run(context.Background(), ds)
	require.NoError(t, err)

	skipped := map[string]string{}
	for _, s := range report.Skipped {
		skipped[s.Analysis] = s.Reason
	}
	for _, name := range []string{
		analysisSummary, analysisPercentiles, analysisIntervals,
		analysisTests, analysisCorrelation, analysisPareto,
		analysisClustering, analysisRegression, analysisTimeSeries,
	} {
		require.Contains(t, skipped, name)
	}
	require.Equal(t, "no numeric columns", skipped[analysisSummary])
	require.Equal(t, "needs a numeric column to compare or two categorical columns", skipped[analysisTests])
	require.Equal(t, "no date column detected", skipped[analysisTimeSeries])

	require.Empty(t, report.Summaries)
	require.Nil(t, report.Correlations)
	require.Nil(t, report.Clusters)
}

func TestRunSingleNumericColumnPartialCoverage(t *testing.T) {
	columns := []dataset.Column{{Name: "latency_ms", Type: dataset.TypeNumber}}
	rows := make([]dataset.Row, 30)
	for i := range rows {
		rows[i] = dataset.Row{"latency_ms": dataset.NewNumber(float64(100 + i))}
	}
	ds, err := dataset.New(columns, rows)
	require.NoError(t, err)

	svc := NewAutoAnalysisService(discardLogger(), DefaultAutoAnalysisConfig())
	report, err := svc.Run(context.Background(), ds)
	require.NoError(t, err)

	require.Len(t, report.Summaries, 1)
	require.Len(t, report.Percentiles, 1)
	require.Len(t, report.Intervals, 1)
	require.Equal(t, "latency_ms", report.Summaries[0].Column)

	skipped := map[string]bool{}
	for _, s := range report.Skipped {
		skipped[s.Analysis] = true
	}
	require.Len(t, report.Skipped, 6)
	for _, name := range []string{
		analysisTests, analysisCorrelation, analysisPareto,
		analysisClustering, analysisRegression, analysisTimeSeries,
	} {
		require.True(t, skipped[name], "expected %s to be skipped", name)
	}
}

func TestRunCustomerBlobsFindsThreeSegments(t *testing.T) {
	ds, err := testkit.CustomerBlobs(testkit.DefaultBlobsConfig())
	require.NoError(t, err)

	cfg := DefaultAutoAnalysisConfig()
	cfg.Seed = 7
	svc := NewAutoAnalysisService(discardLogger(), cfg)

	report, err := svc.Run(context.Background(), ds)
	require.NoError(t, err)

	// two numeric columns, no categories, no dates
	skipped := map[string]string{}
	for _, s := range report.Skipped {
		skipped[s.Analysis] = s.Reason
	}
	require.Len(t, report.Skipped, 3)
	require.Equal(t, "no categorical columns", skipped[analysisTests])
	require.Equal(t, "needs a categorical and a numeric column", skipped[analysisPareto])
	require.Equal(t, "no date column detected", skipped[analysisTimeSeries])

	require.NotNil(t, report.Clusters)
	require.Equal(t, []string{"spend", "visits"}, report.Clusters.Features)
	require.Equal(t, 3, report.Clusters.K, "three separated blobs should pick k=3")
	require.Equal(t, 120, report.Clusters.SampleSize)
	require.Greater(t, report.Clusters.Silhouette, 0.75)
	for _, c := range report.Clusters.Clusters {
		require.Equal(t, 40, c.Size)
	}

	require.NotNil(t, report.Correlations)
	require.Equal(t, 1, report.Correlations.Examined)
	require.Len(t, report.Correlations.Pairs, 1)
	require.Greater(t, report.Correlations.Pairs[0].Pearson, 0.9)

	require.NotNil(t, report.Regression)
	require.Equal(t, "spend", report.Regression.Target)
	require.Greater(t, report.Regression.RSquared, 0.9)
}

func TestRunMonthlySeriesDataset(t *testing.T) {
	ds, err := testkit.MonthlySeries(24, 100, 10, 5, 3)
	require.NoError(t, err)

	svc := NewAutoAnalysisService(discardLogger(), DefaultAutoAnalysisConfig())
	report, err := svc.Run(context.Background(), ds)
	require.NoError(t, err)

	// one numeric column and a date column: descriptive families plus
	// time series run, everything pairwise skips
	skipped := map[string]string{}
	for _, s := range report.Skipped {
		skipped[s.Analysis] = s.Reason
	}
	require.Len(t, report.Skipped, 5)
	require.Equal(t, "no categorical columns", skipped[analysisTests])
	require.Equal(t, "needs at least two numeric columns", skipped[analysisCorrelation])
	require.Equal(t, "needs at least two numeric columns", skipped[analysisClustering])
	require.Equal(t, "needs at least two numeric columns", skipped[analysisRegression])
	require.Equal(t, "needs a categorical and a numeric column", skipped[analysisPareto])

	require.Len(t, report.Summaries, 1)
	require.Equal(t, "value", report.Summaries[0].Column)

	require.Len(t, report.TimeSeries, 1)
	ts := report.TimeSeries[0]
	require.Equal(t, "month", ts.DateColumn)
	require.Equal(t, "value", ts.ValueColumn)
	require.Equal(t, analysis.FreqMonthly, ts.Frequency)
	require.InDelta(t, 1.0, ts.Coverage, 1e-9)
	require.Len(t, ts.Series, 24)
	require.Equal(t, "increasing", ts.TrendDirection)
	require.Greater(t, ts.SeasonalityStrength, 0.2)
	require.Len(t, ts.Forecast, 6)
	require.Len(t, ts.Growth, 23)
}

func TestRunCanceledContextRecordsSkips(t *testing.T) {
	svc, ds := retailService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.Run(ctx, ds)
	require.NoError(t, err)

	// all nine tasks were scheduled, none ran
	require.Len(t, report.Skipped, 9)
	for _, s := range report.Skipped {
		require.Equal(t, "canceled before start", s.Reason)
	}
	require.Empty(t, report.Summaries)
	require.Empty(t, report.Tests)
	require.Nil(t, report.Clusters)
	require.Empty(t, report.TimeSeries)
}

func TestRunIsDeterministicForFixedSeed(t *testing.T) {
	svc, ds := retailService(t)

	first, err := svc.Run(context.Background(), ds)
	require.NoError(t, err)
	second, err := svc.Run(context.Background(), ds)
	require.NoError(t, err)

	require.Equal(t, first.Summaries, second.Summaries)
	require.Equal(t, first.Percentiles, second.Percentiles)
	require.Equal(t, first.Intervals, second.Intervals)
	require.Equal(t, first.Tests, second.Tests)
	require.Equal(t, first.Correlations, second.Correlations)
	require.Equal(t, first.Pareto, second.Pareto)
	require.Equal(t, first.Clusters, second.Clusters)
	require.Equal(t, first.Regression, second.Regression)
	require.Equal(t, first.TimeSeries, second.TimeSeries)
}
