package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the store and service layers. Every failure mode
// resolves to "state unchanged, caller informed"; none is fatal.
var (
	// ErrNotFound is returned when a referenced product or variant no
	// longer exists (stale selection)
	ErrNotFound = errors.New("not found")

	// ErrStockInsufficient is returned when a sale quantity exceeds the
	// selected variant's current stock
	ErrStockInsufficient = errors.New("insufficient stock")

	// ErrValidation is returned for malformed create/update input
	ErrValidation = errors.New("validation failed")

	// ErrImportFormat is returned for a malformed snapshot on import
	ErrImportFormat = errors.New("malformed snapshot")
)

// GatewayError wraps a failure from an external gateway (persistence,
// recognition, print). Transient failures are retryable; local state is
// never corrupted by one.
type GatewayError struct {
	Op        string
	Transient bool
	Err       error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewGatewayError wraps err as a gateway failure for op
func NewGatewayError(op string, transient bool, err error) *GatewayError {
	return &GatewayError{Op: op, Transient: transient, Err: err}
}

// IsTransient reports whether err is a retryable gateway failure
func IsTransient(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Transient
}
