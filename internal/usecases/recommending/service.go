package recommending

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fincoach/fincoach-core/infrastructure/modelstore"
	"github.com/fincoach/fincoach-core/infrastructure/repository"
	"github.com/fincoach/fincoach-core/internal/domain"
	"github.com/fincoach/fincoach-core/internal/ml"
)

const (
	// DefaultTopK is the recommendation list length when the caller does
	// not specify one.
	DefaultTopK = 5

	productIndexArtifact   = "product_index.gob"
	productMappingArtifact = "product_mapping.json"
)

type RecommendationService interface {
	RebuildIndex() (*domain.IndexRebuildResult, error)
	Recommend(userID int, segmentName, forecastSummary string, topK int) ([]*domain.Recommendation, error)
}

type Service struct {
	productRepo repository.ProductRepository
	store       *modelstore.Store
	embedder    *ml.TextEmbedder
}

func NewService(
	productRepo repository.ProductRepository,
	store *modelstore.Store,
) RecommendationService {
	return &Service{
		productRepo: productRepo,
		store:       store,
		embedder:    ml.NewTextEmbedder(ml.DefaultEmbeddingDim),
	}
}

// RebuildIndex re-embeds the whole catalog and replaces the similarity
// index wholesale. Both artifacts are installed atomically, so readers
// mid-recommendation keep the old index until the swap completes.
func (s *Service) RebuildIndex() (*domain.IndexRebuildResult, error) {
	products, err := s.productRepo.ListProducts()
	if err != nil {
		return nil, NewRecommendationError(ErrFetchProducts, err.Error())
	}

	if len(products) == 0 {
		return nil, NewRecommendationError(ErrEmptyCatalog, "the product catalog is empty")
	}

	index := ml.NewFlatIndex(s.embedder.Dim)
	productIDs := make([]int, 0, len(products))
	for _, product := range products {
		index.Add(s.embedder.Embed(productText(product)))
		productIDs = append(productIDs, product.ID)
	}

	if err := s.store.SaveGob(productIndexArtifact, index); err != nil {
		return nil, NewRecommendationError(ErrIndexPersistence, err.Error())
	}
	if err := s.store.SaveJSON(productMappingArtifact, productIDs); err != nil {
		return nil, NewRecommendationError(ErrIndexPersistence, err.Error())
	}

	logrus.WithField("n_products", len(products)).Info("Product similarity index rebuilt")

	return &domain.IndexRebuildResult{
		Status:             "success",
		ProductCount:       len(products),
		EmbeddingDimension: s.embedder.Dim,
	}, nil
}

// Recommend ranks the catalog for one user by blending the rule filter
// with semantic similarity. A missing index degrades to an empty list:
// recommendations are best-effort, never a hard dependency.
func (s *Service) Recommend(
	userID int,
	segmentName string,
	forecastSummary string,
	topK int,
) ([]*domain.Recommendation, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	var index ml.FlatIndex
	if err := s.store.LoadGob(productIndexArtifact, &index); err != nil {
		if errors.Is(err, modelstore.ErrNotFound) {
			logrus.Debugf("No product index yet, returning no recommendations for user %d", userID)
			return []*domain.Recommendation{}, nil
		}
		return nil, NewRecommendationError(ErrIndexLoad, err.Error())
	}

	var productIDs []int
	if err := s.store.LoadJSON(productMappingArtifact, &productIDs); err != nil {
		if errors.Is(err, modelstore.ErrNotFound) {
			return []*domain.Recommendation{}, nil
		}
		return nil, NewRecommendationError(ErrIndexLoad, err.Error())
	}

	products, err := s.productRepo.ListProducts()
	if err != nil {
		return nil, NewRecommendationError(ErrFetchProducts, err.Error())
	}

	productsByID := make(map[int]*domain.Product, len(products))
	for _, product := range products {
		productsByID[product.ID] = product
	}

	filtered := filterByRules(products, segmentName, forecastSummary)
	if len(filtered) == 0 {
		// Over-filtering must never produce an empty recommendation set
		filtered = products
	}
	eligible := make(map[int]bool, len(filtered))
	for _, product := range filtered {
		eligible[product.ID] = true
	}

	query := s.embedder.Embed(buildQuery(segmentName, forecastSummary))

	// Full scan on purpose: top-k retrieval before intersecting with the
	// rule-filtered set could discard eligible high-rank items.
	recommendations := make([]*domain.Recommendation, 0, topK)
	for _, result := range index.Search(query) {
		if result.Position >= len(productIDs) {
			continue
		}
		productID := productIDs[result.Position]
		if !eligible[productID] {
			continue
		}
		product, ok := productsByID[productID]
		if !ok {
			// Indexed product no longer in the catalog
			continue
		}

		recommendations = append(recommendations, &domain.Recommendation{
			ProductID:      product.ID,
			Name:           product.Name,
			Category:       product.Category,
			Description:    product.Description,
			InterestRate:   product.InterestRate,
			Fees:           product.Fees,
			MinBalance:     product.MinBalance,
			Tags:           product.Tags,
			RelevanceScore: result.Score,
		})
		if len(recommendations) >= topK {
			break
		}
	}

	return recommendations, nil
}

// productText concatenates the embeddable text of one product.
func productText(product *domain.Product) string {
	parts := []string{product.Name, product.Category, product.Description}
	if product.Tags != nil && *product.Tags != "" {
		parts = append(parts, *product.Tags)
	}
	return strings.Join(parts, " ")
}
