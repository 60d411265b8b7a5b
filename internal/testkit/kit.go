// Package testkit generates deterministic synthetic datasets for tests and
// the CLI demo. Every generator takes an explicit seed, so fixtures never
// flake.
package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"goinsight/domain/dataset"
)

// RetailConfig sizes the synthetic orders table.
type RetailConfig struct {
	Rows  int
	Seed  int64
	Start time.Time
}

// DefaultRetailConfig emits two orders a day for four months, enough
// for daily decomposition and every hypothesis test.
func DefaultRetailConfig() RetailConfig {
	return RetailConfig{
		Rows:  240,
		Seed:  42,
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

var (
	retailRegions = []string{"north", "south", "east", "west"}
	// heavier regions come first so Pareto has a vital few to find
	regionWeights = []float64{0.4, 0.3, 0.2, 0.1}
	regionEffect  = map[string]float64{"north": 50, "south": 20, "east": 0, "west": -30}
)

// RetailDataset builds a synthetic orders table that exercises every
// analysis family: a date column with an upward revenue trend (time
// series), region with four levels (ANOVA, Pareto), channel with two
// (Welch, chi-square), and three correlated numeric measures
// (correlation, regression, clustering, percentiles).
func RetailDataset(cfg RetailConfig) (*dataset.Dataset, error) {
	if cfg.Rows <= 0 {
		cfg = DefaultRetailConfig()
	}
	if cfg.Start.IsZero() {
		cfg.Start = DefaultRetailConfig().Start
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	columns := []dataset.Column{
		{Name: "order_date", Type: dataset.TypeString},
		{Name: "region", Type: dataset.TypeString},
		{Name: "channel", Type: dataset.TypeString},
		{Name: "revenue", Type: dataset.TypeNumber},
		{Name: "units", Type: dataset.TypeNumber},
		{Name: "discount", Type: dataset.TypeNumber},
	}

	rows := make([]dataset.Row, 0, cfg.Rows)
	for i := 0; i < cfg.Rows; i++ {
		dayOffset := i / 2 // two orders per day keeps the index daily
		at := cfg.Start.AddDate(0, 0, dayOffset)

		region := weightedPick(rng, retailRegions, regionWeights)
		channel := "store"
		channelEffect := 0.0
		if rng.Float64() < 0.6 {
			channel = "online"
			channelEffect = 25
		}

		revenue := 200 + 0.5*float64(dayOffset) + regionEffect[region] + channelEffect + rng.NormFloat64()*30
		if revenue < 10 {
			revenue = 10
		}
		units := math.Round(revenue/20 + rng.NormFloat64()*2)
		if units < 1 {
			units = 1
		}
		discount := 30 - revenue*0.05 + rng.NormFloat64()*5
		if discount < 0 {
			discount = 0
		}

		rows = append(rows, dataset.Row{
			"order_date": dataset.NewString(at.Format("2006-01-02")),
			"region":     dataset.NewString(region),
			"channel":    dataset.NewString(channel),
			"revenue":    dataset.NewNumber(round2(revenue)),
			"units":      dataset.NewNumber(units),
			"discount":   dataset.NewNumber(round2(discount)),
		})
	}
	return dataset.New(columns, rows)
}

// BlobsConfig shapes well-separated customer segments for clustering
// fixtures.
type BlobsConfig struct {
	PerCluster int
	Seed       int64
	Centers    [][2]float64 // (spend, visits) per segment
	Spread     float64
}

// DefaultBlobsConfig returns three separated segments.
func DefaultBlobsConfig() BlobsConfig {
	return BlobsConfig{
		PerCluster: 40,
		Seed:       7,
		Centers:    [][2]float64{{50, 2}, {300, 10}, {900, 25}},
		Spread:     0.08,
	}
}

// CustomerBlobs builds a spend/visits table drawn from Gaussian blobs
// around the configured centers. Spread is relative to each center, so
// far-apart segments stay separable.
func CustomerBlobs(cfg BlobsConfig) (*dataset.Dataset, error) {
	if cfg.PerCluster <= 0 || len(cfg.Centers) == 0 {
		cfg = DefaultBlobsConfig()
	}
	if cfg.Spread <= 0 {
		cfg.Spread = DefaultBlobsConfig().Spread
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	columns := []dataset.Column{
		{Name: "spend", Type: dataset.TypeNumber},
		{Name: "visits", Type: dataset.TypeNumber},
	}
	rows := make([]dataset.Row, 0, cfg.PerCluster*len(cfg.Centers))
	for _, center := range cfg.Centers {
		for i := 0; i < cfg.PerCluster; i++ {
			spend := center[0] * (1 + rng.NormFloat64()*cfg.Spread)
			visits := center[1] * (1 + rng.NormFloat64()*cfg.Spread)
			rows = append(rows, dataset.Row{
				"spend":  dataset.NewNumber(round2(spend)),
				"visits": dataset.NewNumber(round2(visits)),
			})
		}
	}
	return dataset.New(columns, rows)
}

// MonthlySeries builds a two-column (month, value) table following
// value = base + slope*i + amplitude*sin(2*pi*i/12) + noise, handy for
// decomposition and forecast fixtures.
func MonthlySeries(months int, base, slope, amplitude float64, seed int64) (*dataset.Dataset, error) {
	if months <= 0 {
		months = 24
	}
	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	columns := []dataset.Column{
		{Name: "month", Type: dataset.TypeString},
		{Name: "value", Type: dataset.TypeNumber},
	}
	rows := make([]dataset.Row, 0, months)
	for i := 0; i < months; i++ {
		v := base + slope*float64(i) + amplitude*math.Sin(2*math.Pi*float64(i)/12) + rng.NormFloat64()*slope*0.1
		rows = append(rows, dataset.Row{
			"month": dataset.NewString(start.AddDate(0, i, 0).Format("2006-01-02")),
			"value": dataset.NewNumber(round2(v)),
		})
	}
	return dataset.New(columns, rows)
}

func weightedPick(rng *rand.Rand, items []string, weights []float64) string {
	r := rng.Float64()
	var cum float64
	for i, w := range weights {
		cum += w
		if r < cum {
			return items[i]
		}
	}
	return items[len(items)-1]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Describe prints a one-line shape summary, used by the CLI demo output.
func Describe(ds *dataset.Dataset) string {
	return fmt.Sprintf("%d rows x %d columns", ds.RowCount(), len(ds.Columns()))
}
