package recommending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincoach/fincoach-core/internal/domain"
)

func strPtr(s string) *string { return &s }

func product(id int, name, tags string) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        name,
		Category:    "Banking",
		Description: name + " product",
		Tags:        strPtr(tags),
	}
}

func TestForecastKeywordTables(t *testing.T) {
	assert.True(t, forecastNeedsCredit("Warning: Your balance may drop below $500"))
	assert.True(t, forecastNeedsCredit("projected to decreasing by $100"))
	assert.False(t, forecastNeedsCredit("all good"))

	assert.True(t, forecastHasSurplus("stable, positive outlook"))
	assert.True(t, forecastHasSurplus("projected to increasing by $50"))
	assert.False(t, forecastHasSurplus("all good"))
}

func TestFilterByRulesDecliningForecastSelectsCreditProducts(t *testing.T) {
	catalog := []*domain.Product{
		product(1, "Flexible Credit Line", "credit,low-interest"),
		product(2, "Growth Fund", "investment,high-yield"),
		product(3, "Everyday Checking", "standard,everyday"),
	}

	filtered := filterByRules(catalog, "High-Value Transactors", "projected to decreasing, warning")
	require.Len(t, filtered, 1)
	assert.Equal(t, 1, filtered[0].ID)
}

func TestFilterByRulesSurplusSelectsInvestmentProducts(t *testing.T) {
	catalog := []*domain.Product{
		product(1, "Flexible Credit Line", "credit,loan"),
		product(2, "Growth Fund", "investment,high-yield"),
	}

	filtered := filterByRules(catalog, "Unknown", "stable, positive outlook")
	require.Len(t, filtered, 1)
	assert.Equal(t, 2, filtered[0].ID)
}

func TestFilterByRulesSegmentTagsApplyIndependently(t *testing.T) {
	catalog := []*domain.Product{
		product(1, "Basic Saver", "low-fee,savings"),
		product(2, "Platinum Card", "premium,rewards"),
	}

	filtered := filterByRules(catalog, "Frugal Savers", "no trend keywords here")
	require.Len(t, filtered, 1)
	assert.Equal(t, 1, filtered[0].ID)
}

func TestFilterByRulesTargetClusterHint(t *testing.T) {
	hinted := product(1, "Starter Account", "plain")
	hinted.TargetCluster = strPtr("New/Infrequent Users, Frugal Savers")

	filtered := filterByRules([]*domain.Product{hinted}, "frugal savers", "nothing relevant")
	require.Len(t, filtered, 1)

	assert.Empty(t, filterByRules([]*domain.Product{hinted}, "High-Value Transactors", "nothing relevant"))
}

func TestFilterByRulesReturnsEmptyWhenNothingMatches(t *testing.T) {
	catalog := []*domain.Product{
		product(1, "Platinum Card", "premium,rewards"),
	}

	// "stable" marks surplus, but the product carries no surplus tags,
	// no Frugal Savers tags and no target hint
	assert.Empty(t, filterByRules(catalog, "Frugal Savers", "stable, positive outlook"))
}

func TestBuildQueryComposesSegmentAndTrendPhrases(t *testing.T) {
	query := buildQuery("Frugal Savers", "projected to decreasing, warning")
	assert.Contains(t, query, "low cost savings account")
	assert.Contains(t, query, "credit line loan budgeting")

	query = buildQuery("High-Value Transactors", "stable, positive outlook")
	assert.Contains(t, query, "premium credit card rewards")
	assert.Contains(t, query, "high yield growth")

	// Unknown segments fall back to the beginner phrase, no trend words
	assert.Equal(t, defaultQueryPhrase, buildQuery("Mystery Segment", "no keywords"))
}
