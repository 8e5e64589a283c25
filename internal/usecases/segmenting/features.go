package segmenting

import (
	"math"
	"strings"
	"time"

	"github.com/fincoach/fincoach-core/internal/domain"
)

// defaultRecencyDays is the sentinel recency for users without any
// transaction, so brand-new users still map to a valid feature point.
const defaultRecencyDays = 365

// categoryVocabulary is the fixed spending-category vocabulary. The
// spelling matches the ingested statement data verbatim. Categories
// outside the vocabulary are folded out of the share computation, so
// shares may sum to less than one; that is intentional.
var categoryVocabulary = []string{
	"Market",
	"Transport",
	"Coffe",
	"Restuarant",
	"Phone",
	"Health",
	"Learning",
}

// FeatureKeys returns the feature names in their canonical order. This
// order is part of the trained model schema and must be identical at
// training and prediction time.
func FeatureKeys() []string {
	keys := []string{
		"recency",
		"frequency",
		"monetary",
		"avg_transaction",
		"balance_std",
		"weekday_ratio",
	}
	for _, cat := range categoryVocabulary {
		keys = append(keys, "spending_"+strings.ToLower(cat))
	}
	return keys
}

// Extractor converts a user's transaction history into RFM and
// behavioral features. The clock is injected so recency is testable.
type Extractor struct {
	now func() time.Time
}

func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// Extract builds the feature vector for one user. An empty transaction
// list yields the fixed default vector.
func (e *Extractor) Extract(transactions []*domain.Transaction) *domain.FeatureVector {
	keys := FeatureKeys()
	if len(transactions) == 0 {
		return &domain.FeatureVector{Names: keys, Values: defaultValues(len(keys))}
	}

	var (
		lastDate        time.Time
		totalDebit      float64
		weekdayDebit    float64
		balances        []float64
		debitByCategory = map[string]float64{}
	)

	for _, tx := range transactions {
		if tx.Date.After(lastDate) {
			lastDate = tx.Date
		}

		debit, _ := tx.Debit.Float64()
		totalDebit += debit
		debitByCategory[tx.Category] += debit
		if isWeekday(tx.Date) {
			weekdayDebit += debit
		}

		balance, _ := tx.Balance.Float64()
		balances = append(balances, balance)
	}

	frequency := float64(len(transactions))
	recency := math.Floor(e.now().Sub(lastDate).Hours() / 24)

	weekdayRatio := 0.5
	if totalDebit > 0 {
		weekdayRatio = weekdayDebit / totalDebit
	}

	values := []float64{
		recency,
		frequency,
		totalDebit,
		totalDebit / frequency,
		sampleStdDev(balances),
		weekdayRatio,
	}
	for _, cat := range categoryVocabulary {
		share := 0.0
		if totalDebit > 0 {
			share = debitByCategory[cat] / totalDebit
		}
		values = append(values, share)
	}

	return &domain.FeatureVector{Names: keys, Values: values}
}

func defaultValues(n int) []float64 {
	values := make([]float64, n)
	values[0] = defaultRecencyDays
	values[5] = 0.5 // weekday_ratio
	return values
}

func isWeekday(date time.Time) bool {
	wd := date.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// sampleStdDev returns the sample standard deviation, zero for fewer
// than two observations.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(values)-1))
}
