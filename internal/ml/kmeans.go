package ml

import (
	"math"
	"math/rand"
)

const defaultMaxIterations = 300

// KMeans partitions samples into K clusters with Lloyd's algorithm and
// k-means++ seeding. The random source is seeded explicitly so training
// runs are reproducible. Centroids are exported so a fitted partitioner
// can be gob-encoded into a model bundle.
type KMeans struct {
	K         int
	Seed      int64
	MaxIter   int
	Centroids [][]float64
}

func NewKMeans(k int, seed int64) *KMeans {
	return &KMeans{K: k, Seed: seed, MaxIter: defaultMaxIterations}
}

// Fit clusters the samples and returns the assigned label per sample.
// When there are fewer samples than K, the remaining centroids are
// duplicated from existing samples and the surplus clusters stay empty.
func (km *KMeans) Fit(samples [][]float64) []int {
	rng := rand.New(rand.NewSource(km.Seed))
	km.Centroids = km.seedCentroids(samples, rng)

	maxIter := km.MaxIter
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}

	labels := make([]int, len(samples))
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, sample := range samples {
			best := km.Predict(sample)
			if best != labels[i] || iter == 0 {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
		km.recomputeCentroids(samples, labels)
	}

	return labels
}

// Predict returns the index of the nearest centroid.
func (km *KMeans) Predict(sample []float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range km.Centroids {
		d := squaredDistance(sample, centroid)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// seedCentroids picks initial centroids with k-means++ weighting.
func (km *KMeans) seedCentroids(samples [][]float64, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, km.K)
	centroids = append(centroids, cloneVector(samples[rng.Intn(len(samples))]))

	for len(centroids) < km.K {
		weights := make([]float64, len(samples))
		total := 0.0
		for i, sample := range samples {
			minDist := math.Inf(1)
			for _, centroid := range centroids {
				if d := squaredDistance(sample, centroid); d < minDist {
					minDist = d
				}
			}
			weights[i] = minDist
			total += minDist
		}

		if total == 0 {
			// All remaining mass is on already-chosen points; duplicate one
			centroids = append(centroids, cloneVector(samples[rng.Intn(len(samples))]))
			continue
		}

		target := rng.Float64() * total
		acc := 0.0
		chosen := len(samples) - 1
		for i, w := range weights {
			acc += w
			if acc >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, cloneVector(samples[chosen]))
	}

	return centroids
}

func (km *KMeans) recomputeCentroids(samples [][]float64, labels []int) {
	dim := len(samples[0])
	sums := make([][]float64, km.K)
	counts := make([]int, km.K)
	for c := range sums {
		sums[c] = make([]float64, dim)
	}

	for i, sample := range samples {
		c := labels[i]
		counts[c]++
		for j, v := range sample {
			sums[c][j] += v
		}
	}

	for c := range sums {
		if counts[c] == 0 {
			// Empty cluster keeps its previous centroid
			continue
		}
		for j := range sums[c] {
			sums[c][j] /= float64(counts[c])
		}
		km.Centroids[c] = sums[c]
	}
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func cloneVector(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
