package services

import (
	"errors"
	"fmt"
)

var ErrInvalidPeriodDate = errors.New("invalid date")

// ValidationError rejects a submitted date before anything is written.
type ValidationError struct {
	Input string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid date %q: use YYYY-MM-DD", e.Input)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidPeriodDate, e.Err}
}

// StoreError reports a failed call to the date store. It is never retried.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("period store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func wrapStoreError(op string, err error) error {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
