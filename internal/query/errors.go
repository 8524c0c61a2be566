package query

import (
	"errors"
	"fmt"
)

// Error represents a failure while building or executing a filter query.
//
// Error kinds:
//   - Unknown operator: a leaf names an operator outside the supported set
//   - Invalid filter value: an "in" leaf without a list value, or a value
//     that could not be decoded
//   - Store error: the execution surface failed
//
// Compilation errors abort the whole request; no partial query is returned.
// Store errors are never retried here.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Column is the offending leaf's column, when known.
	Column string

	// Operator is the offending operator, when known.
	Operator string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes query errors.
type ErrorCode string

const (
	// ErrCodeUnknownOperator indicates an unrecognized operator string.
	ErrCodeUnknownOperator ErrorCode = "UNKNOWN_OPERATOR"

	// ErrCodeInvalidFilterValue indicates a value unusable with its operator.
	ErrCodeInvalidFilterValue ErrorCode = "INVALID_FILTER_VALUE"

	// ErrCodeStoreError indicates the underlying store failed.
	ErrCodeStoreError ErrorCode = "STORE_ERROR"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnknownOperator returns true if err is an unknown operator error.
// Uses errors.As to handle wrapped errors.
func IsUnknownOperator(err error) bool {
	return hasCode(err, ErrCodeUnknownOperator)
}

// IsInvalidFilterValue returns true if err is an invalid filter value error.
func IsInvalidFilterValue(err error) bool {
	return hasCode(err, ErrCodeInvalidFilterValue)
}

// IsStoreError returns true if err is a store error.
func IsStoreError(err error) bool {
	return hasCode(err, ErrCodeStoreError)
}

func hasCode(err error, code ErrorCode) bool {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Code == code
	}
	return false
}

// NewUnknownOperatorError creates an Error for an unrecognized operator.
func NewUnknownOperatorError(op string) *Error {
	return &Error{
		Code:     ErrCodeUnknownOperator,
		Message:  fmt.Sprintf("unknown operator: %s", op),
		Operator: op,
	}
}

// NewInvalidFilterValueError creates an Error for a value that cannot be
// used on column. reason completes "column <name> ...".
func NewInvalidFilterValueError(column, op, reason string, cause error) *Error {
	return &Error{
		Code:     ErrCodeInvalidFilterValue,
		Message:  fmt.Sprintf("column %s: %s", column, reason),
		Column:   column,
		Operator: op,
		Err:      cause,
	}
}

// NewStoreError wraps a failure of the execution surface.
func NewStoreError(table string, err error) *Error {
	return &Error{
		Code:    ErrCodeStoreError,
		Message: fmt.Sprintf("query on %s failed", table),
		Err:     err,
	}
}
