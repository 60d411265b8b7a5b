package cluster

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// silhouette scores a partition in [-1, 1]: for each point, cohesion a
// (mean distance to its own cluster) against separation b (mean distance
// to the nearest other cluster), s = (b-a)/max(a,b). To bound cost on
// large inputs only an evenly-strided sample of at most sampleCap points
// is scored; distances still run against every point.
func silhouette(points [][]float64, assign []int, k, sampleCap int) float64 {
	n := len(points)
	if n == 0 || k < 2 {
		return 0
	}

	sizes := make([]int, k)
	for _, c := range assign {
		sizes[c]++
	}

	stride := 1
	if sampleCap > 0 && n > sampleCap {
		stride = (n + sampleCap - 1) / sampleCap
	}

	var sum float64
	var scored int
	sumDist := make([]float64, k)

	for i := 0; i < n; i += stride {
		own := assign[i]
		scored++
		if sizes[own] < 2 {
			continue // singleton scores 0
		}

		for c := range sumDist {
			sumDist[c] = 0
		}
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			sumDist[assign[j]] += floats.Distance(points[i], points[j], 2)
		}

		a := sumDist[own] / float64(sizes[own]-1)
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == own || sizes[c] == 0 {
				continue
			}
			if m := sumDist[c] / float64(sizes[c]); m < b {
				b = m
			}
		}
		if math.IsInf(b, 1) {
			continue // no other populated cluster
		}
		if den := math.Max(a, b); den > 0 {
			sum += (b - a) / den
		}
	}

	if scored == 0 {
		return 0
	}
	return sum / float64(scored)
}
