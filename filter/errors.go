package filter

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error categories. Every error returned by this package wraps exactly one of them,
// so callers can branch with errors.Is.
var (
	// ErrInvalidInput indicates malformed or mixed-shape filter input.
	ErrInvalidInput = errors.New("invalid filter input")
	// ErrUnknownColumn indicates a filter column that is absent from the schema.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrTypeMismatch indicates a value or column type the operator cannot accept.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidOperator indicates an operator outside the recognized set.
	ErrInvalidOperator = errors.New("invalid operator")
	// ErrEmptyValueSequence indicates an empty sequence given to a sequence operator.
	ErrEmptyValueSequence = errors.New("empty value sequence")
)

// Error describes a rejected filter.
// None of these errors are transient: the same input always fails the same way.
type Error struct {
	// Kind is one of the package sentinel errors.
	Kind error
	// Column is the offending filter column, if known.
	Column string
	// Operator is the offending filter operator, if known.
	Operator Operator
	// Message is the human-readable description.
	Message string
}

func newError(kind error, column string, op Operator, msg string) *Error {
	return &Error{Kind: kind, Column: column, Operator: op, Message: msg}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

// Unwrap returns the error category.
func (e *Error) Unwrap() error { return e.Kind }

// GRPCStatus reports filter errors as InvalidArgument so that Flight handlers
// surface them as configuration errors rather than retryable failures.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}
