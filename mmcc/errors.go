package mmcc

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	ErrInvalidInput  = errors.New("mmcc: invalid input")
	ErrShapeMismatch = errors.New("mmcc: shape mismatch")
)

// InvalidInputError reports a violated precondition. It matches
// ErrInvalidInput and any wrapped cause.
type InvalidInputError struct {
	Op     string
	Reason string
	Err    error
}

func (e *InvalidInputError) Error() string {
	msg := "mmcc: " + e.Op + ": invalid input: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns ErrInvalidInput and the cause, if any.
func (e *InvalidInputError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidInput}
	}
	return []error{ErrInvalidInput, e.Err}
}

// ShapeMismatchError reports component rows of differing lengths.
type ShapeMismatchError struct {
	Op   string
	Row  int
	Got  int
	Want int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("mmcc: %s: shape mismatch: row %d has length %d, want %d", e.Op, e.Row, e.Got, e.Want)
}

// Unwrap returns ErrShapeMismatch.
func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

func invalid(op, format string, args ...any) error {
	return &InvalidInputError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
