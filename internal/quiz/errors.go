package quiz

import (
	"errors"
	"fmt"
)

// ErrInvalidOperation marks a transition attempted in the wrong phase or with bad arguments.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrNoSession indicates that no question set has been loaded yet.
var ErrNoSession = fmt.Errorf("%w: no question set loaded", ErrInvalidOperation)

// ErrorKind classifies an OperationError for adapters that need to map it.
type ErrorKind int

const (
	// KindPhase means the operation is not valid in the current phase.
	KindPhase ErrorKind = iota
	// KindArgument means an index or label was out of range.
	KindArgument
	// KindStale means the caller referred to an older question order.
	KindStale
)

// OperationError describes a rejected state machine call.
type OperationError struct {
	Op     string
	Kind   ErrorKind
	Reason string
}

// Error returns the operation and reason.
func (err *OperationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Op, err.Reason)
}

// Unwrap lets errors.Is match ErrInvalidOperation.
func (err *OperationError) Unwrap() error {
	return ErrInvalidOperation
}

func phaseError(op string, phase Phase) error {
	return &OperationError{Op: op, Kind: KindPhase, Reason: fmt.Sprintf("not allowed while %s", phase)}
}

func argumentError(op, format string, args ...any) error {
	return &OperationError{Op: op, Kind: KindArgument, Reason: fmt.Sprintf(format, args...)}
}
