package domain

// Recommendation is a product with its semantic relevance score attached.
// The score is a normalized inner product, roughly in [-1, 1].
type Recommendation struct {
	ProductID      int      `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	InterestRate   *float64 `json:"interest_rate"`
	Fees           *float64 `json:"fees"`
	MinBalance     *float64 `json:"min_balance"`
	Tags           *string  `json:"tags"`
	RelevanceScore float64  `json:"relevance_score"`
}

// IndexRebuildResult summarizes a product index rebuild.
type IndexRebuildResult struct {
	Status             string `json:"status"`
	ProductCount       int    `json:"n_products"`
	EmbeddingDimension int    `json:"embedding_dimension"`
}
