package forecasting

import (
	"errors"
	"fmt"
)

var (
	// Data insufficiency
	ErrInsufficientHistory = errors.New("insufficient balance history for forecasting")
	ErrNoTransactions      = errors.New("no transaction data available")

	// Model lifecycle
	ErrModelNotTrained  = errors.New("forecast model not trained for this user")
	ErrModelPersistence = errors.New("error persisting forecast model")
	ErrModelLoad        = errors.New("error loading forecast model")

	// Database access
	ErrFetchTransactions = errors.New("error fetching transactions from database")
)

// ForecastError carries the base error plus the user it concerns.
type ForecastError struct {
	Err     error
	UserID  int
	Details string
}

func (e *ForecastError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (user %d): %s", e.Err.Error(), e.UserID, e.Details)
	}
	return fmt.Sprintf("%s (user %d)", e.Err.Error(), e.UserID)
}

func (e *ForecastError) Unwrap() error {
	return e.Err
}

func NewForecastError(err error, userID int, details string) *ForecastError {
	return &ForecastError{
		Err:     err,
		UserID:  userID,
		Details: details,
	}
}
