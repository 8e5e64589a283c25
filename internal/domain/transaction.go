package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single immutable ledger entry for a user. Debit and
// Credit are non-negative; Balance is the running account balance after
// the transaction was applied.
type Transaction struct {
	ID          int
	UserID      int
	Date        time.Time
	Category    string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
	Description *string
}
