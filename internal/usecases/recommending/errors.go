package recommending

import (
	"errors"
	"fmt"
)

var (
	// Data insufficiency
	ErrEmptyCatalog = errors.New("no products available to index")

	// Database access
	ErrFetchProducts = errors.New("error fetching products from database")

	// Index lifecycle
	ErrIndexPersistence = errors.New("error persisting product index")
	ErrIndexLoad        = errors.New("error loading product index")
)

// RecommendationError carries the base error plus operation context.
type RecommendationError struct {
	Err     error
	Details string
}

func (e *RecommendationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *RecommendationError) Unwrap() error {
	return e.Err
}

func NewRecommendationError(err error, details string) *RecommendationError {
	return &RecommendationError{
		Err:     err,
		Details: details,
	}
}
