package recommending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fincoach/fincoach-core/infrastructure/modelstore"
	"github.com/fincoach/fincoach-core/infrastructure/repository/mocks"
	"github.com/fincoach/fincoach-core/internal/domain"
	"github.com/fincoach/fincoach-core/internal/ml"
)

func newTestStore(t *testing.T) *modelstore.Store {
	t.Helper()
	store, err := modelstore.New(t.TempDir())
	require.NoError(t, err)
	return store
}

func testCatalog() []*domain.Product {
	return []*domain.Product{
		product(1, "High Yield Savings", "savings,high-yield,conservative"),
		product(2, "Platinum Rewards Card", "premium,rewards,high-limit"),
		product(3, "Flexible Credit Line", "credit,loan"),
		product(4, "Everyday Checking", "standard,everyday"),
		product(5, "Budgeting Assistant", "budgeting,low-fee"),
		product(6, "Index Growth Fund", "investment"),
	}
}

func TestRebuildIndexFailsOnEmptyCatalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	productRepo := mocks.NewMockProductRepository(ctrl)
	productRepo.EXPECT().ListProducts().Return(nil, nil)

	service := NewService(productRepo, newTestStore(t))

	_, err := service.RebuildIndex()
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestRecommendWithoutIndexReturnsEmptyList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewService(mocks.NewMockProductRepository(ctrl), newTestStore(t))

	recommendations, err := service.Recommend(1, "Frugal Savers", "stable", 5)
	require.NoError(t, err)
	assert.Empty(t, recommendations)
}

func TestRebuildAndRecommendRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	catalog := testCatalog()
	productRepo := mocks.NewMockProductRepository(ctrl)
	productRepo.EXPECT().ListProducts().Return(catalog, nil).AnyTimes()

	service := NewService(productRepo, newTestStore(t))

	result, err := service.RebuildIndex()
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, len(catalog), result.ProductCount)
	assert.Equal(t, ml.DefaultEmbeddingDim, result.EmbeddingDimension)

	recommendations, err := service.Recommend(1, "Frugal Savers", "stable, positive outlook", 3)
	require.NoError(t, err)

	require.NotEmpty(t, recommendations)
	assert.LessOrEqual(t, len(recommendations), 3)

	knownIDs := map[int]bool{}
	for _, p := range catalog {
		knownIDs[p.ID] = true
	}
	for _, rec := range recommendations {
		assert.True(t, knownIDs[rec.ProductID])
		assert.GreaterOrEqual(t, rec.RelevanceScore, -1.0-1e-9)
		assert.LessOrEqual(t, rec.RelevanceScore, 1.0+1e-9)
	}

	// Scores arrive in descending order
	for i := 1; i < len(recommendations); i++ {
		assert.GreaterOrEqual(t, recommendations[i-1].RelevanceScore, recommendations[i].RelevanceScore)
	}

	// Surplus outlook keeps only surplus/segment products: the credit
	// line must not surface for a stable Frugal Saver
	for _, rec := range recommendations {
		assert.NotEqual(t, 3, rec.ProductID)
	}
}

func TestRecommendFallsBackToFullCatalogWhenRulesFilterEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No product matches Frugal Savers tags, surplus tags or a target
	// hint, so the rule stage yields zero candidates
	catalog := []*domain.Product{
		product(1, "Platinum Rewards Card", "premium,rewards"),
		product(2, "Concierge Banking", "exclusive"),
	}
	productRepo := mocks.NewMockProductRepository(ctrl)
	productRepo.EXPECT().ListProducts().Return(catalog, nil).AnyTimes()

	service := NewService(productRepo, newTestStore(t))

	_, err := service.RebuildIndex()
	require.NoError(t, err)

	recommendations, err := service.Recommend(1, "Frugal Savers", "stable, positive outlook", 5)
	require.NoError(t, err)
	assert.Len(t, recommendations, 2)
}

func TestRebuildIndexIsSemanticallyIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	productRepo := mocks.NewMockProductRepository(ctrl)
	productRepo.EXPECT().ListProducts().Return(testCatalog(), nil).AnyTimes()

	service := NewService(productRepo, newTestStore(t))

	_, err := service.RebuildIndex()
	require.NoError(t, err)
	first, err := service.Recommend(1, "High-Value Transactors", "projected to decreasing, warning", 5)
	require.NoError(t, err)

	_, err = service.RebuildIndex()
	require.NoError(t, err)
	second, err := service.Recommend(1, "High-Value Transactors", "projected to decreasing, warning", 5)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ProductID, second[i].ProductID)
		assert.InDelta(t, first[i].RelevanceScore, second[i].RelevanceScore, 1e-12)
	}
}

func TestRecommendDefaultTopK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	productRepo := mocks.NewMockProductRepository(ctrl)
	productRepo.EXPECT().ListProducts().Return(testCatalog(), nil).AnyTimes()

	service := NewService(productRepo, newTestStore(t))

	_, err := service.RebuildIndex()
	require.NoError(t, err)

	recommendations, err := service.Recommend(1, "Average Spenders", "", 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(recommendations), DefaultTopK)
}
