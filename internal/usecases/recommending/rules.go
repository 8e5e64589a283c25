package recommending

import (
	"strings"

	"github.com/fincoach/fincoach-core/internal/domain"
)

// Rule tables for the first filtering stage. These are data, not code:
// the forecast summary and segment name are matched against fixed
// keyword sets, and a product passes when any signal hits.
var (
	needsCreditKeywords = []string{"decreasing", "drop", "low", "warning"}
	hasSurplusKeywords  = []string{"increasing", "positive", "stable"}

	needsCreditTags = []string{"credit", "loan", "budgeting"}
	hasSurplusTags  = []string{"investment", "savings", "high-yield"}

	segmentTagTable = map[string][]string{
		"Frugal Savers":          {"low-fee", "savings", "conservative"},
		"High-Value Transactors": {"premium", "rewards", "high-limit"},
		"Average Spenders":       {"standard", "balanced", "everyday"},
	}
)

// Query phrase tables for the second stage: the synthetic search query
// is assembled from the user's segment and the forecast trend.
var segmentQueryTable = map[string]string{
	"Frugal Savers":          "low cost savings account conservative investment",
	"High-Value Transactors": "premium credit card rewards high limit",
	"Average Spenders":       "standard checking account balanced financial products",
}

const (
	defaultQueryPhrase = "beginner friendly basic banking"
	creditQueryPhrase  = "credit line loan budgeting tool financial assistance"
	surplusQueryPhrase = "investment savings high yield growth"
)

func forecastNeedsCredit(forecastSummary string) bool {
	return containsAny(strings.ToLower(forecastSummary), needsCreditKeywords)
}

func forecastHasSurplus(forecastSummary string) bool {
	return containsAny(strings.ToLower(forecastSummary), hasSurplusKeywords)
}

// filterByRules returns the products passing the rule filter. Callers
// fall back to the full catalog when the result is empty.
func filterByRules(products []*domain.Product, segmentName, forecastSummary string) []*domain.Product {
	needsCredit := forecastNeedsCredit(forecastSummary)
	hasSurplus := forecastHasSurplus(forecastSummary)
	segmentTags := segmentTagTable[segmentName]

	var filtered []*domain.Product
	for _, product := range products {
		tags := ""
		if product.Tags != nil {
			tags = strings.ToLower(*product.Tags)
		}

		include := false
		// A declining outlook takes precedence over a surplus signal
		if needsCredit {
			include = containsAny(tags, needsCreditTags)
		} else if hasSurplus {
			include = containsAny(tags, hasSurplusTags)
		}

		if !include && containsAny(tags, segmentTags) {
			include = true
		}

		if !include && product.TargetCluster != nil &&
			strings.Contains(strings.ToLower(*product.TargetCluster), strings.ToLower(segmentName)) {
			include = true
		}

		if include {
			filtered = append(filtered, product)
		}
	}

	return filtered
}

// buildQuery assembles the semantic search query from the fixed phrase
// tables.
func buildQuery(segmentName, forecastSummary string) string {
	parts := []string{defaultQueryPhrase}
	if phrase, ok := segmentQueryTable[segmentName]; ok {
		parts[0] = phrase
	}

	summary := strings.ToLower(forecastSummary)
	if strings.Contains(summary, "decreasing") || strings.Contains(summary, "warning") {
		parts = append(parts, creditQueryPhrase)
	} else if strings.Contains(summary, "increasing") || strings.Contains(summary, "positive") {
		parts = append(parts, surplusQueryPhrase)
	}

	return strings.Join(parts, " ")
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
