package ml

import "sort"

// FlatIndex is an exact inner-product similarity index: a flat list of
// vectors scanned in full on every search. Over L2-normalized vectors
// the inner product equals cosine similarity. Exported fields make the
// index gob-encodable as a persisted artifact.
type FlatIndex struct {
	Dim     int
	Vectors [][]float64
}

// SearchResult is one ranked index entry.
type SearchResult struct {
	Position int
	Score    float64
}

func NewFlatIndex(dim int) *FlatIndex {
	return &FlatIndex{Dim: dim}
}

// Add appends a vector to the index and returns its position.
func (idx *FlatIndex) Add(vec []float64) int {
	idx.Vectors = append(idx.Vectors, vec)
	return len(idx.Vectors) - 1
}

// Len returns the number of indexed vectors.
func (idx *FlatIndex) Len() int {
	return len(idx.Vectors)
}

// Search scans every indexed vector and returns all positions ranked by
// descending inner-product score. Ties keep insertion order.
func (idx *FlatIndex) Search(query []float64) []SearchResult {
	results := make([]SearchResult, len(idx.Vectors))
	for i, vec := range idx.Vectors {
		results[i] = SearchResult{Position: i, Score: dot(query, vec)}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	return results
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
