package ml

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultEmbeddingDim is the dimensionality of product and query embeddings.
const DefaultEmbeddingDim = 256

// TextEmbedder maps free text into a fixed-dimensional vector with the
// hashing trick: each token is hashed into a bucket and accumulated with
// a hash-derived sign. The embedding is fully deterministic, requires no
// trained weights, and inner products over normalized vectors behave as
// a bag-of-words cosine similarity.
type TextEmbedder struct {
	Dim int
}

func NewTextEmbedder(dim int) *TextEmbedder {
	if dim <= 0 {
		dim = DefaultEmbeddingDim
	}
	return &TextEmbedder{Dim: dim}
}

// Embed returns the L2-normalized embedding of the text. The zero vector
// is returned for text without any token.
func (e *TextEmbedder) Embed(text string) []float64 {
	vec := make([]float64, e.Dim)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		sum := h.Sum32()

		bucket := int(sum % uint32(e.Dim))
		sign := 1.0
		if (sum>>16)&1 == 1 {
			sign = -1.0
		}
		vec[bucket] += sign
	}

	NormalizeL2(vec)
	return vec
}

// NormalizeL2 scales the vector to unit length in place. Zero vectors
// are left untouched.
func NormalizeL2(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
