// Package derrors provides the error types reported by the benchmark engines.
// None of them is fatal: each one describes a caller mistake or a clock
// anomaly after which the session keeps whatever valid data it has.
package derrors

import (
	"errors"
	"fmt"
)

// Usage error codes
const (
	CodeStopWithoutStart       = "STOP_WITHOUT_START"
	CodeFinishWithoutStart     = "FINISH_WITHOUT_START"
	CodeCheckpointWithoutStart = "CHECKPOINT_WITHOUT_START"
	CodeCheckpointOutOfOrder   = "CHECKPOINT_OUT_OF_ORDER"
	CodeNoCurrentStage         = "NO_CURRENT_STAGE"
	CodeInvalidCount           = "INVALID_COUNT"
	CodeEmptyName              = "EMPTY_NAME"
	CodeNotFound               = "NOT_FOUND"
	CodeClockSkew              = "CLOCK_SKEW"
)

// BenchError is the base interface for all benchmark errors
type BenchError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all benchmark errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// UsageError represents a call made out of sequence, such as stopping a
// stage that was never started
type UsageError struct {
	baseError
	// Op is the operation that detected the mistake
	Op string
	// Subject is the stage or checkpoint name involved, if any
	Subject string
}

// NewUsageError creates a new usage error
func NewUsageError(code, op, subject, message string) *UsageError {
	return &UsageError{
		baseError: baseError{
			code:    code,
			message: message,
		},
		Op:      op,
		Subject: subject,
	}
}

// NotFoundError represents a lookup of a stage that does not exist
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    CodeNotFound,
			message: message,
		},
		Resource: resource,
	}
}

// ClockError represents a negative duration observed from the clock or
// supplied by the caller. The offending delta is clamped or dropped.
type ClockError struct {
	baseError
	Subject string
}

// NewClockError creates a new clock error
func NewClockError(subject string, message string) *ClockError {
	return &ClockError{
		baseError: baseError{
			code:    CodeClockSkew,
			message: message,
		},
		Subject: subject,
	}
}

// HasCode reports whether err, or any error it wraps, carries code
func HasCode(err error, code string) bool {
	var be BenchError
	if errors.As(err, &be) {
		return be.Code() == code
	}
	return false
}
