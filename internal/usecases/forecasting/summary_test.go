package forecasting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fincoach/fincoach-core/internal/domain"
)

func TestBuildSummaryCriticalThresholdWinsOverLow(t *testing.T) {
	values := []float64{900, 700, 450, 300}
	summary := buildSummary(1100, 300, values, domain.TrendDecreasing, 4)

	assert.Contains(t, summary, "decreasing")
	assert.Contains(t, summary, "$800.00")
	// Day three is the first below $500
	assert.Contains(t, summary, "below $500 in approximately 3 days")
	assert.NotContains(t, summary, "$1,000")
}

func TestBuildSummaryLowThresholdOnly(t *testing.T) {
	values := []float64{1100, 950, 920, 910}
	summary := buildSummary(1200, 910, values, domain.TrendDecreasing, 4)

	assert.Contains(t, summary, "below $1,000 in approximately 2 days")
	assert.NotContains(t, summary, "$500")
}

func TestBuildSummaryStableAboveThresholds(t *testing.T) {
	values := []float64{1900, 1850, 1800}
	summary := buildSummary(2000, 1800, values, domain.TrendDecreasing, 3)

	assert.Contains(t, summary, "remain stable above $1,000")
}

func TestBuildSummaryPositiveTrend(t *testing.T) {
	values := []float64{2100, 2200, 2300}
	summary := buildSummary(2000, 2300, values, domain.TrendIncreasing, 3)

	assert.Contains(t, summary, "increasing")
	assert.Contains(t, summary, "$300.00")
	assert.Contains(t, summary, "15.0%")
	assert.Contains(t, summary, "positive trend")
}

func TestBuildSummaryZeroCurrentBalance(t *testing.T) {
	values := []float64{-50, -100}
	summary := buildSummary(0, -100, values, domain.TrendDecreasing, 2)

	// Division by zero is avoided; percent change reports as 0.0%
	assert.Contains(t, summary, "(0.0%)")
}
