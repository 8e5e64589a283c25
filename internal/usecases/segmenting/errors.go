package segmenting

import (
	"errors"
	"fmt"
)

var (
	// Data insufficiency
	ErrNoCustomers = errors.New("no customer data available for training")

	// Database access
	ErrFetchCustomers    = errors.New("error fetching customers from database")
	ErrFetchTransactions = errors.New("error fetching transactions from database")
	ErrAssignmentUpdate  = errors.New("error updating segment assignments")

	// Model lifecycle
	ErrModelPersistence = errors.New("error persisting segmentation model bundle")
	ErrModelLoad        = errors.New("error loading segmentation model bundle")
	ErrSchemaMismatch   = errors.New("feature schema does not match trained model")
)

// SegmentationError carries the base error plus context about the
// failed operation.
type SegmentationError struct {
	Err     error
	Details string
}

func (e *SegmentationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SegmentationError) Unwrap() error {
	return e.Err
}

func NewSegmentationError(err error, details string) *SegmentationError {
	return &SegmentationError{
		Err:     err,
		Details: details,
	}
}
