package advising

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrFetchUser         = errors.New("error fetching user from database")
	ErrFetchTransactions = errors.New("error fetching user transactions from database")
)

// AdvisingError carries the base error plus the user it concerns.
type AdvisingError struct {
	Err    error
	UserID int
}

func (e *AdvisingError) Error() string {
	return fmt.Sprintf("%s: user %d", e.Err.Error(), e.UserID)
}

func (e *AdvisingError) Unwrap() error {
	return e.Err
}

func NewAdvisingError(err error, userID int) *AdvisingError {
	return &AdvisingError{
		Err:    err,
		UserID: userID,
	}
}
