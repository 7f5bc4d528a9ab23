package errors

import (
	"errors"
	"fmt"
)

var (
	// Order errors
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderAlreadyCancelled = errors.New("order is already cancelled")
	ErrOrderTerminal         = errors.New("order is in a terminal state")

	// Catalog errors
	ErrProductNotFound = errors.New("product not found")
	ErrItemUnavailable = errors.New("item not available")

	// Cancellation errors
	ErrInvalidCancellationReason = errors.New("cancellation reason not permitted")

	// Platform errors
	ErrPlatformUnavailable = errors.New("platform unavailable")
	ErrPlatformTimeout     = errors.New("platform request timeout")

	// Callback errors
	ErrCallbackFailed = errors.New("callback delivery failed")

	// Request errors
	ErrMissingContext = errors.New("request context missing")
	ErrMissingMessage = errors.New("request message missing")
)

// StructuralError marks an inbound request that is malformed at the envelope
// level. It is rejected synchronously with a NACK and never retried.
type StructuralError struct {
	Field   string
	Message string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error in %s: %s", e.Field, e.Message)
}

func NewStructuralError(field, message string) *StructuralError {
	return &StructuralError{Field: field, Message: message}
}

// ValidationError is a failed domain precondition. Final reports whether
// retrying is pointless (e.g. the order is already cancelled); non-final
// failures may be transient and stay eligible for retry.
type ValidationError struct {
	Reason string
	Code   string
	Final  bool
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidationError(reason, code string, final bool, err error) *ValidationError {
	return &ValidationError{Reason: reason, Code: code, Final: final, Err: err}
}

// IsFinal reports whether err carries final-failure semantics.
func IsFinal(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Final
	}
	return false
}

// CompensationError wraps a failed fallback/rollback action. It is logged and
// dropped: there is no further fallback to escalate to.
type CompensationError struct {
	Op  string
	Err error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("compensation %s failed: %v", e.Op, e.Err)
}

func (e *CompensationError) Unwrap() error {
	return e.Err
}

func NewCompensationError(op string, err error) *CompensationError {
	return &CompensationError{Op: op, Err: err}
}
