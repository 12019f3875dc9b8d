package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrEmptyCart rejects a sale with no line items.
var ErrEmptyCart = errors.New("sale must contain at least one line item")

// ErrBackendUnavailable is raised by mutations when no storage backend
// could be opened. Reads degrade to empty result sets instead.
var ErrBackendUnavailable = errors.New("storage backend unavailable")

// ErrRawQueryUnsupported is returned by backends that have no query
// dialect to run raw statements against.
var ErrRawQueryUnsupported = errors.New("raw queries are not supported by this backend")

// ValidationError rejects malformed or missing input before any write
// is attempted.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", e.Field, e.Tag)
}

// InsufficientStockError reports the first product whose guarded stock
// decrement affected zero rows. The whole transaction is rolled back.
type InsufficientStockError struct {
	ProductID uint
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

// ReferentialConflictError blocks a delete while dependent rows exist.
type ReferentialConflictError struct {
	ProductID uint
}

func (e *ReferentialConflictError) Error() string {
	return fmt.Sprintf("product %d is referenced by existing sale line items", e.ProductID)
}

// TransactionAbortedError wraps any unexpected failure inside a
// transaction scope after the rollback has completed.
type TransactionAbortedError struct {
	Op  string
	Err error
}

func (e *TransactionAbortedError) Error() string {
	return fmt.Sprintf("%s: transaction aborted: %v", e.Op, e.Err)
}

func (e *TransactionAbortedError) Unwrap() error { return e.Err }

// AbortUnlessKnown passes taxonomy errors through untouched and wraps
// everything else as a transaction abort.
func AbortUnlessKnown(op string, err error) error {
	if err == nil {
		return nil
	}
	var insufficient *InsufficientStockError
	var conflict *ReferentialConflictError
	var invalid *ValidationError
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrBackendUnavailable),
		errors.As(err, &insufficient),
		errors.As(err, &conflict),
		errors.As(err, &invalid):
		return err
	}
	return &TransactionAbortedError{Op: op, Err: err}
}
