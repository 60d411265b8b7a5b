package analysis

import (
	"goinsight/domain/core"
)

// Skipped records an analysis the planner declined to run and why, so a
// report is honest about coverage, not just about findings.
type Skipped struct {
	Analysis string `json:"analysis"`
	Reason   string `json:"reason"`
}

// ColumnSummary pairs a column name with its descriptive profile.
type ColumnSummary struct {
	Column string       `json:"column"`
	Stats  SummaryStats `json:"stats"`
}

// Report is the auto-analysis envelope: one optional slot per analysis
// family plus provenance (dataset fingerprint, start time, runtime) so a
// rendered report can assert exactly which data snapshot it describes.
type Report struct {
	ID          core.ReportID  `json:"id"`
	Fingerprint core.Hash      `json:"fingerprint"`
	StartedAt   core.Timestamp `json:"started_at"`
	RuntimeMS   int64          `json:"runtime_ms"`
	Rows        int            `json:"rows"`

	Summaries    []ColumnSummary            `json:"summaries,omitempty"`
	Percentiles  []PercentileResult         `json:"percentiles,omitempty"`
	Intervals    []ConfidenceIntervalResult `json:"intervals,omitempty"`
	Tests        []HypothesisTestResult     `json:"tests,omitempty"`
	Correlations *CorrelationResult         `json:"correlations,omitempty"`
	Pareto       []ParetoResult             `json:"pareto,omitempty"`
	Clusters     *ClusterResult             `json:"clusters,omitempty"`
	Regression   *RegressionResult          `json:"regression,omitempty"`
	TimeSeries   []TimeSeriesResult         `json:"time_series,omitempty"`

	Skipped []Skipped `json:"skipped,omitempty"`
}

// NewReport stamps a fresh envelope with an ID and start time.
func NewReport(fingerprint core.Hash, rows int) *Report {
	return &Report{
		ID:          core.NewReportID(),
		Fingerprint: fingerprint,
		StartedAt:   core.Now(),
		Rows:        rows,
	}
}

// Skip appends a skipped-analysis record.
func (r *Report) Skip(analysis, reason string) {
	r.Skipped = append(r.Skipped, Skipped{Analysis: analysis, Reason: reason})
}

// FamilyCount counts the analysis families that produced results.
func (r *Report) FamilyCount() int {
	n := 0
	if len(r.Summaries) > 0 {
		n++
	}
	if len(r.Percentiles) > 0 {
		n++
	}
	if len(r.Intervals) > 0 {
		n++
	}
	if len(r.Tests) > 0 {
		n++
	}
	if r.Correlations != nil {
		n++
	}
	if len(r.Pareto) > 0 {
		n++
	}
	if r.Clusters != nil {
		n++
	}
	if r.Regression != nil {
		n++
	}
	if len(r.TimeSeries) > 0 {
		n++
	}
	return n
}

// SignificantTests filters hypothesis results that cleared their alpha.
func (r *Report) SignificantTests() []HypothesisTestResult {
	var out []HypothesisTestResult
	for _, t := range r.Tests {
		if t.Significant {
			out = append(out, t)
		}
	}
	return out
}
