package ml

import "math"

// Silhouette returns the mean silhouette coefficient over all samples,
// in [-1, 1]. Samples in singleton clusters contribute zero, matching
// the usual convention. Returns zero when fewer than two clusters are
// actually populated.
func Silhouette(samples [][]float64, labels []int) float64 {
	clusterSizes := map[int]int{}
	for _, l := range labels {
		clusterSizes[l]++
	}
	if len(clusterSizes) < 2 {
		return 0
	}

	total := 0.0
	for i, sample := range samples {
		own := labels[i]
		if clusterSizes[own] <= 1 {
			continue
		}

		// Mean distance to every cluster, keyed by label
		sums := map[int]float64{}
		for j, other := range samples {
			if i == j {
				continue
			}
			sums[labels[j]] += math.Sqrt(squaredDistance(sample, other))
		}

		a := sums[own] / float64(clusterSizes[own]-1)
		b := math.Inf(1)
		for l, sum := range sums {
			if l == own {
				continue
			}
			if mean := sum / float64(clusterSizes[l]); mean < b {
				b = mean
			}
		}

		if denom := math.Max(a, b); denom > 0 {
			total += (b - a) / denom
		}
	}

	return total / float64(len(samples))
}
