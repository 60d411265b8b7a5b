// Package analysis defines the typed result records every statistical
// component returns. Records are immutable snapshots produced fresh per
// call; the reporting layer renders them, the core never reads them back.
package analysis

// TestType identifies which hypothesis test produced a result.
type TestType string

const (
	TestWelchT    TestType = "welch_t"
	TestChiSquare TestType = "chi_square"
	TestANOVA     TestType = "one_way_anova"
)

// GroupSummary describes one group that entered a hypothesis test.
type GroupSummary struct {
	Name   string  `json:"name"`
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// HypothesisTestResult carries a test statistic, its tail probability and a
// standardized effect size. Degenerate inputs yield statistic 0, p-value 1
// and Significant=false with the reason in Interpretation; callers can
// always render a result.
type HypothesisTestResult struct {
	Test           TestType       `json:"test"`
	Statistic      float64        `json:"statistic"`
	PValue         float64        `json:"p_value"`
	DF             float64        `json:"df"`             // Welch-Satterthwaite df is fractional
	DF2            float64        `json:"df2,omitempty"`  // within-group df for ANOVA
	EffectSize     float64        `json:"effect_size"`
	EffectUnit     string         `json:"effect_unit"` // "d", "cramers_v", "eta_squared"
	Signal         Signal         `json:"signal"`
	Significant    bool           `json:"significant"`
	Alpha          float64        `json:"alpha"`
	SampleSize     int            `json:"sample_size"`
	Groups         []GroupSummary `json:"groups,omitempty"`
	Interpretation string         `json:"interpretation"`
}

// ConfidenceIntervalResult bounds a sample mean at a chosen level. Widened
// marks the small-sample adjustment applied when n < 30.
type ConfidenceIntervalResult struct {
	Column         string  `json:"column,omitempty"`
	Level          float64 `json:"level"`
	Mean           float64 `json:"mean"`
	Lower          float64 `json:"lower"`
	Upper          float64 `json:"upper"`
	MarginOfError  float64 `json:"margin_of_error"`
	StdErr         float64 `json:"std_err"`
	SampleSize     int     `json:"sample_size"`
	Widened        bool    `json:"widened"`
	Interpretation string  `json:"interpretation"`
}

// SummaryStats is the descriptive profile of one numeric sample.
type SummaryStats struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Sum    float64 `json:"sum"`
}

// PercentileResult reports order statistics and IQR-fence outliers for one
// numeric sample.
type PercentileResult struct {
	Column         string    `json:"column,omitempty"`
	SampleSize     int       `json:"sample_size"`
	P10            float64   `json:"p10"`
	P25            float64   `json:"p25"`
	P50            float64   `json:"p50"`
	P75            float64   `json:"p75"`
	P90            float64   `json:"p90"`
	P95            float64   `json:"p95"`
	P99            float64   `json:"p99"`
	IQR            float64   `json:"iqr"`
	LowerFence     float64   `json:"lower_fence"`
	UpperFence     float64   `json:"upper_fence"`
	OutlierCount   int       `json:"outlier_count"`
	Outliers       []float64 `json:"outliers,omitempty"`
	Interpretation string    `json:"interpretation"`
}

// ParetoItem is one ranked category in a concentration analysis.
type ParetoItem struct {
	Label           string  `json:"label"`
	Value           float64 `json:"value"`
	Share           float64 `json:"share"`            // fraction of total, 0..1
	CumulativeShare float64 `json:"cumulative_share"` // running fraction, last item = 1
	Vital           bool    `json:"vital"`
}

// ParetoResult ranks categories by contribution and marks the vital few
// that carry the first 80% of the total.
type ParetoResult struct {
	Category       string       `json:"category,omitempty"` // grouping column
	Measure        string       `json:"measure,omitempty"`  // aggregated column
	Total          float64      `json:"total"`
	Items          []ParetoItem `json:"items"`
	VitalCount     int          `json:"vital_count"`
	VitalShare     float64      `json:"vital_share"` // share of total held by the vital few
	Interpretation string       `json:"interpretation"`
}

// CorrelationPair is one examined column pair. NonLinear marks pairs where
// rank correlation clearly exceeds linear correlation, hinting at a
// monotonic but curved relationship.
type CorrelationPair struct {
	X         string  `json:"x"`
	Y         string  `json:"y"`
	Pearson   float64 `json:"pearson"`
	Spearman  float64 `json:"spearman"`
	PValue    float64 `json:"p_value"`
	N         int     `json:"n"`
	Signal    Signal  `json:"signal"`
	NonLinear bool    `json:"non_linear"`
}

// SpearmanCorrelationResult is a single-pair rank correlation.
type SpearmanCorrelationResult struct {
	Rho            float64 `json:"rho"`
	PValue         float64 `json:"p_value"`
	N              int     `json:"n"`
	Signal         Signal  `json:"signal"`
	Interpretation string  `json:"interpretation"`
}

// CorrelationResult is the pairwise scan over a dataset's numeric columns,
// sorted by descending |spearman|.
type CorrelationResult struct {
	Pairs          []CorrelationPair `json:"pairs"`
	Examined       int               `json:"examined"` // pairs examined before filtering
	Interpretation string            `json:"interpretation"`
}

// Cluster is one discovered segment: centroid in original units, member
// row indices into the source dataset, and a qualitative label per feature.
type Cluster struct {
	ID       int       `json:"id"`
	Size     int       `json:"size"`
	Share    float64   `json:"share"`
	Centroid []float64 `json:"centroid"`
	Members  []int     `json:"members"`
	Label    string    `json:"label"`
}

// ClusterResult is the K-means segmentation outcome. Centroid seeding is
// stochastic: runs with Seed=0 are not reproducible across invocations.
type ClusterResult struct {
	Features       []string  `json:"features"`
	K              int       `json:"k"`
	Clusters       []Cluster `json:"clusters"`
	Silhouette     float64   `json:"silhouette"`
	Inertia        float64   `json:"inertia"`
	Iterations     int       `json:"iterations"`
	Converged      bool      `json:"converged"`
	SampleSize     int       `json:"sample_size"` // usable rows after numeric filtering
	Interpretation string    `json:"interpretation"`
}

// Coefficient is one fitted regression term. Significance is the rough
// |value/std_error| > 2 rule, not an exact t-test.
type Coefficient struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	StdError    float64 `json:"std_error"`
	TStat       float64 `json:"t_stat"`
	Significant bool    `json:"significant"`
}

// RegressionResult is an OLS fit. AdjRSquared may leave [0,1] for small
// samples; that is a property of the formula, not an error.
type RegressionResult struct {
	Target                string        `json:"target"`
	Intercept             float64       `json:"intercept"`
	Coefficients          []Coefficient `json:"coefficients"`
	RSquared              float64       `json:"r_squared"`
	AdjRSquared           float64       `json:"adj_r_squared"`
	Residuals             []float64     `json:"residuals,omitempty"`
	SignificantPredictors []string      `json:"significant_predictors,omitempty"`
	Equation              string        `json:"equation"`
	SampleSize            int           `json:"sample_size"`
	Interpretation        string        `json:"interpretation"`
}

// Frequency is the detected spacing of a time series.
type Frequency string

const (
	FreqDaily     Frequency = "daily"
	FreqWeekly    Frequency = "weekly"
	FreqMonthly   Frequency = "monthly"
	FreqQuarterly Frequency = "quarterly"
	FreqYearly    Frequency = "yearly"
	FreqIrregular Frequency = "irregular"
)

// SeriesPoint is one aggregated time bucket.
type SeriesPoint struct {
	At    string  `json:"at"` // bucket label, e.g. "2025-03" for monthly
	Value float64 `json:"value"`
}

// ForecastPoint extends the series h steps past the last observation.
type ForecastPoint struct {
	Step  int     `json:"step"` // 1-based horizon offset
	Value float64 `json:"value"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// GrowthRate is the change between two consecutive buckets.
type GrowthRate struct {
	Period  string  `json:"period"`
	Value   float64 `json:"value"`
	Change  float64 `json:"change"`
	Percent float64 `json:"percent"` // change / previous * 100; 0 when previous is 0
}

// TimeSeriesResult is the full temporal profile of one date+value pair:
// decomposition, seasonality, forecast and growth.
type TimeSeriesResult struct {
	DateColumn          string          `json:"date_column"`
	ValueColumn         string          `json:"value_column"`
	Frequency           Frequency       `json:"frequency"`
	Coverage            float64         `json:"coverage"`
	Series              []SeriesPoint   `json:"series"`
	Trend               []float64       `json:"trend,omitempty"`
	SeasonalComponent   []float64       `json:"seasonal_component,omitempty"`
	Residual            []float64       `json:"residual,omitempty"`
	MovingAverage       []float64       `json:"moving_average,omitempty"`
	TrendDirection      string          `json:"trend_direction"` // "increasing", "decreasing", "flat"
	SeasonalityStrength float64         `json:"seasonality_strength"`
	Forecast            []ForecastPoint `json:"forecast,omitempty"`
	Growth              []GrowthRate    `json:"growth,omitempty"`
	Interpretation      string          `json:"interpretation"`
}
