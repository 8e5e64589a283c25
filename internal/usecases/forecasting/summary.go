package forecasting

import (
	"fmt"
	"math"
	"strings"

	"github.com/fincoach/fincoach-core/internal/domain"
)

// Balance thresholds for the forecast narrative. Fixed constants of the
// design, deliberately not configurable per user.
const (
	lowBalanceThreshold      = 1000.0
	criticalBalanceThreshold = 500.0
)

// buildSummary renders the human-readable forecast narrative. The
// projection is scanned in order for the first day below each threshold
// and only the tightest crossed threshold is reported.
func buildSummary(current, final float64, values []float64, trend string, horizonDays int) string {
	change := final - current
	changePercent := 0.0
	if current != 0 {
		changePercent = change / current * 100
	}

	lowDay := 0
	criticalDay := 0
	for i, v := range values {
		if v < lowBalanceThreshold && lowDay == 0 {
			lowDay = i + 1
		}
		if v < criticalBalanceThreshold && criticalDay == 0 {
			criticalDay = i + 1
		}
	}

	var parts []string
	if trend == domain.TrendDecreasing {
		parts = append(parts, fmt.Sprintf(
			"Your balance is projected to %s by $%.2f (%.1f%%) over the next %d days.",
			trend, math.Abs(change), math.Abs(changePercent), horizonDays))

		switch {
		case criticalDay > 0:
			parts = append(parts, fmt.Sprintf(
				"Warning: Your balance may drop below $500 in approximately %d days.", criticalDay))
		case lowDay > 0:
			parts = append(parts, fmt.Sprintf(
				"Caution: Your balance may drop below $1,000 in approximately %d days.", lowDay))
		default:
			parts = append(parts, "Your balance should remain stable above $1,000.")
		}
	} else {
		parts = append(parts, fmt.Sprintf(
			"Your balance is projected to %s by $%.2f (%.1f%%) over the next %d days.",
			trend, change, changePercent, horizonDays))
		parts = append(parts, "This is a positive trend for your financial health.")
	}

	return strings.Join(parts, " ")
}
