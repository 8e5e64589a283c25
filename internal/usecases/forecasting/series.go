package forecasting

import (
	"time"

	"github.com/fincoach/fincoach-core/internal/domain"
)

// BalanceSeries is a strictly daily, gap-free sequence of end-of-day
// balances. Days without transactions carry the previous day's balance
// forward.
type BalanceSeries struct {
	Dates        []time.Time
	Values       []float64
	ObservedDays int
}

// Start returns the first day of the series.
func (s *BalanceSeries) Start() time.Time {
	return s.Dates[0]
}

// End returns the last day of the series.
func (s *BalanceSeries) End() time.Time {
	return s.Dates[len(s.Dates)-1]
}

// Current returns the most recent end-of-day balance.
func (s *BalanceSeries) Current() float64 {
	return s.Values[len(s.Values)-1]
}

// BuildBalanceSeries derives the daily series from a user's ordered
// transactions: the last observed balance wins on each calendar day and
// gaps are forward-filled across the full observed span. Returns nil
// when there are no transactions.
func BuildBalanceSeries(transactions []*domain.Transaction) *BalanceSeries {
	if len(transactions) == 0 {
		return nil
	}

	lastPerDay := map[time.Time]float64{}
	minDay := truncateToDay(transactions[0].Date)
	maxDay := minDay
	for _, tx := range transactions {
		day := truncateToDay(tx.Date)
		balance, _ := tx.Balance.Float64()
		lastPerDay[day] = balance

		if day.Before(minDay) {
			minDay = day
		}
		if day.After(maxDay) {
			maxDay = day
		}
	}

	series := &BalanceSeries{ObservedDays: len(lastPerDay)}
	current := lastPerDay[minDay]
	for day := minDay; !day.After(maxDay); day = day.AddDate(0, 0, 1) {
		if balance, ok := lastPerDay[day]; ok {
			current = balance
		}
		series.Dates = append(series.Dates, day)
		series.Values = append(series.Values, current)
	}

	return series
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
