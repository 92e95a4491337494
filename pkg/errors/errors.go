package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Binding and dispatch errors
	ErrInvalidArgument    ErrorCode = "INVALID_ARGUMENT"
	ErrUnregisteredEvent  ErrorCode = "UNREGISTERED_EVENT"
	ErrUnrecognizedAction ErrorCode = "UNRECOGNIZED_ACTION"

	// Resolution errors
	ErrMissingType  ErrorCode = "MISSING_TYPE"
	ErrNotCallable  ErrorCode = "NOT_CALLABLE"
	ErrUnitNotFound ErrorCode = "UNIT_NOT_FOUND"
	ErrUnitLoad     ErrorCode = "UNIT_LOAD"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// EventError represents a structured error with code and details
type EventError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *EventError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *EventError) Unwrap() error {
	return e.Wrapped
}

// Is matches any *EventError carrying the same code
func (e *EventError) Is(target error) bool {
	var targetErr *EventError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new EventError with the given code and message
func New(code ErrorCode, message string) *EventError {
	return &EventError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new EventError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *EventError {
	return &EventError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an EventError
func Wrap(err error, code ErrorCode, message string) *EventError {
	if err == nil {
		return nil
	}
	return &EventError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *EventError {
	if err == nil {
		return nil
	}
	return &EventError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *EventError) WithDetail(key string, value interface{}) *EventError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *EventError) WithDetails(details map[string]interface{}) *EventError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var eventErr *EventError
	if errors.As(err, &eventErr) {
		return eventErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an EventError
func GetErrorCode(err error) ErrorCode {
	var eventErr *EventError
	if errors.As(err, &eventErr) {
		return eventErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an EventError
func GetErrorDetails(err error) map[string]interface{} {
	var eventErr *EventError
	if errors.As(err, &eventErr) {
		return eventErr.Details
	}
	return nil
}
