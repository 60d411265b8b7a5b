package cluster

import (
	"fmt"
	"math"
	"strings"

	"goinsight/domain/analysis"
	"goinsight/domain/dataset"
	"goinsight/ports"
)

// Config bounds the K sweep. Zero values take defaults; Seed 0 keeps the
// time-based source, so pass a fixed seed for reproducible runs.
type Config struct {
	MaxK                int
	MaxIterations       int
	SilhouetteSampleCap int
	LabelThreshold      float64 // z-distance from the mean that reads as high/low
	Seed                int64
}

// DefaultConfig returns the production sweep bounds.
func DefaultConfig() Config {
	return Config{
		MaxK:                8,
		MaxIterations:       100,
		SilhouetteSampleCap: 500,
		LabelThreshold:      0.5,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.MaxK <= 0 {
		c.MaxK = d.MaxK
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = d.MaxIterations
	}
	if c.SilhouetteSampleCap <= 0 {
		c.SilhouetteSampleCap = d.SilhouetteSampleCap
	}
	if c.LabelThreshold <= 0 {
		c.LabelThreshold = d.LabelThreshold
	}
	return c
}

// KMeans segments dataset rows across the named numeric columns. Rows with
// any non-numeric cell in those columns are dropped before clustering.
// Unknown columns error loudly; statistical shortfalls come back as an
// empty result with the reason in Interpretation.
func KMeans(ds *dataset.Dataset, columns []string, cfg Config) (analysis.ClusterResult, error) {
	points, rowIndex, err := ds.NumericRows(columns)
	if err != nil {
		return analysis.ClusterResult{}, err
	}
	return Segment(points, rowIndex, columns, cfg), nil
}

// Segment sweeps K from 2 to min(MaxK, n/2, 8), scores each K by
// silhouette and keeps the best. Centroids are reported in original units;
// labels qualify each feature as high/low/average from the standardized
// centroid position.
func Segment(points [][]float64, rowIndex []int, features []string, cfg Config) analysis.ClusterResult {
	cfg = cfg.normalized()
	n := len(points)

	res := analysis.ClusterResult{Features: features, SampleSize: n}
	if n < 3 {
		res.Interpretation = fmt.Sprintf("needs at least 3 complete rows across %s, got %d",
			strings.Join(features, ", "), n)
		return res
	}

	maxK := cfg.MaxK
	if n/2 < maxK {
		maxK = n / 2
	}
	if maxK > 8 {
		maxK = 8
	}
	if maxK < 2 {
		res.Interpretation = fmt.Sprintf("%d rows are too few to form 2 clusters", n)
		return res
	}

	means, stds := standardMoments(points)
	z := make([][]float64, n)
	for i, pt := range points {
		z[i] = make([]float64, len(pt))
		for d, v := range pt {
			z[i][d] = (v - means[d]) / stds[d]
		}
	}

	rng := ports.NewRNG(cfg.Seed)
	bestScore := math.Inf(-1)
	var best Partition
	bestK := 0
	for k := 2; k <= maxK; k++ {
		p := Run(z, k, rng, cfg.MaxIterations)
		score := silhouette(z, p.Assignments, k, cfg.SilhouetteSampleCap)
		if score > bestScore {
			bestScore = score
			best = p
			bestK = k
		}
	}

	res.K = bestK
	res.Silhouette = bestScore
	res.Inertia = best.Inertia
	res.Iterations = best.Iterations
	res.Converged = best.Converged

	members := make([][]int, bestK)
	for i, c := range best.Assignments {
		members[c] = append(members[c], rowIndex[i])
	}
	for c := 0; c < bestK; c++ {
		if len(members[c]) == 0 {
			continue
		}
		centroid := make([]float64, len(features))
		for d := range centroid {
			centroid[d] = best.Centroids[c][d]*stds[d] + means[d]
		}
		res.Clusters = append(res.Clusters, analysis.Cluster{
			ID:       c,
			Size:     len(members[c]),
			Share:    float64(len(members[c])) / float64(n),
			Centroid: centroid,
			Members:  members[c],
			Label:    describeCentroid(best.Centroids[c], features, cfg.LabelThreshold),
		})
	}

	largest := res.Clusters[0]
	for _, cl := range res.Clusters[1:] {
		if cl.Size > largest.Size {
			largest = cl
		}
	}
	res.Interpretation = fmt.Sprintf("segmented %d rows into %d groups (silhouette %.2f); largest group: %s (%d rows)",
		n, len(res.Clusters), bestScore, largest.Label, largest.Size)
	return res
}

// standardMoments returns the per-dimension population mean and standard
// deviation, flooring a zero deviation to 1 so constant columns survive
// standardization.
func standardMoments(points [][]float64) (means, stds []float64) {
	n := float64(len(points))
	dims := len(points[0])
	means = make([]float64, dims)
	stds = make([]float64, dims)

	for _, pt := range points {
		for d, v := range pt {
			means[d] += v
		}
	}
	for d := range means {
		means[d] /= n
	}
	for _, pt := range points {
		for d, v := range pt {
			diff := v - means[d]
			stds[d] += diff * diff
		}
	}
	for d := range stds {
		stds[d] = math.Sqrt(stds[d] / n)
		if stds[d] == 0 {
			stds[d] = 1
		}
	}
	return means, stds
}

// describeCentroid renders "high amount, low quantity, average tenure"
// from a standardized centroid.
func describeCentroid(zCentroid []float64, features []string, threshold float64) string {
	parts := make([]string, len(features))
	for d, name := range features {
		switch {
		case zCentroid[d] > threshold:
			parts[d] = "high " + name
		case zCentroid[d] < -threshold:
			parts[d] = "low " + name
		default:
			parts[d] = "average " + name
		}
	}
	return strings.Join(parts, ", ")
}
