// Package cluster segments dataset rows with K-means++ and picks K by
// silhouette score. Points are z-score standardized before clustering so
// no single wide-ranged column dominates the distance metric.
//
// Centroid seeding is stochastic: unless the caller fixes Config.Seed,
// two runs over the same data may land on different local optima.
package cluster

import (
	"gonum.org/v1/gonum/floats"

	"goinsight/ports"
)

// Partition is one fixed-K clustering over already-standardized points.
type Partition struct {
	Assignments []int
	Centroids   [][]float64
	Inertia     float64
	Iterations  int
	Converged   bool
}

// Run clusters points into k groups: K-means++ seeding, then Lloyd
// assign/recompute iterations until no point moves or maxIterations is
// reached. This is the only loop-carried state in the package.
func Run(points [][]float64, k int, rng ports.RNG, maxIterations int) Partition {
	n := len(points)
	if n == 0 || k <= 0 {
		return Partition{}
	}
	if k > n {
		k = n
	}
	if maxIterations <= 0 {
		maxIterations = 100
	}

	centroids := seedCentroids(points, k, rng)
	assign := make([]int, n)
	for i := range assign {
		assign[i] = -1
	}

	p := Partition{}
	for iter := 0; iter < maxIterations; iter++ {
		p.Iterations = iter + 1

		changed := false
		for i, pt := range points {
			best := nearestCentroid(centroids, pt)
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed {
			p.Converged = true
			break
		}

		counts := make([]int, k)
		sums := make([][]float64, k)
		for c := range sums {
			sums[c] = make([]float64, len(points[0]))
		}
		for i, pt := range points {
			counts[assign[i]]++
			floats.Add(sums[assign[i]], pt)
		}
		for c := range centroids {
			if counts[c] == 0 {
				continue // empty cluster keeps its previous centroid
			}
			for d := range centroids[c] {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	p.Assignments = assign
	p.Centroids = centroids
	for i, pt := range points {
		d := floats.Distance(pt, centroids[assign[i]], 2)
		p.Inertia += d * d
	}
	return p
}

// seedCentroids implements K-means++: the first centroid is uniform
// random, each subsequent one is sampled with probability proportional to
// its squared distance from the nearest centroid chosen so far.
func seedCentroids(points [][]float64, k int, rng ports.RNG) [][]float64 {
	n := len(points)
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clonePoint(points[rng.Intn(n)]))

	weights := make([]float64, n)
	for len(centroids) < k {
		var total float64
		for i, pt := range points {
			d := floats.Distance(pt, centroids[nearestCentroid(centroids, pt)], 2)
			weights[i] = d * d
			total += weights[i]
		}

		idx := n - 1
		if total == 0 {
			// every point coincides with a centroid already
			idx = rng.Intn(n)
		} else {
			target := rng.Float64() * total
			var cum float64
			for i, w := range weights {
				cum += w
				if cum >= target {
					idx = i
					break
				}
			}
		}
		centroids = append(centroids, clonePoint(points[idx]))
	}
	return centroids
}

func nearestCentroid(centroids [][]float64, pt []float64) int {
	best := 0
	bestDist := floats.Distance(pt, centroids[0], 2)
	for c := 1; c < len(centroids); c++ {
		if d := floats.Distance(pt, centroids[c], 2); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func clonePoint(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
