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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Dispatch errors
	ErrIOFailure         ErrorCode = "IO_FAILURE"
	ErrTransformFailure  ErrorCode = "TRANSFORM_FAILURE"
	ErrResolutionFailure ErrorCode = "RESOLUTION_FAILURE"
	ErrParseFailure      ErrorCode = "PARSE_FAILURE"
	ErrPathMapping       ErrorCode = "PATH_MAPPING"
)

// specializations maps a code to the broader code it refines. A parse
// failure is a transform failure reported with a readable message.
var specializations = map[ErrorCode]ErrorCode{
	ErrParseFailure: ErrTransformFailure,
}

// Matches reports whether c is code or a specialization of it
func (c ErrorCode) Matches(code ErrorCode) bool {
	for cur := c; cur != ""; cur = specializations[cur] {
		if cur == code {
			return true
		}
	}
	return false
}

// PipelineError represents a structured error with code and details
type PipelineError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PipelineError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PipelineError) Is(target error) bool {
	var targetErr *PipelineError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PipelineError with the given code and message
func New(code ErrorCode, message string) *PipelineError {
	return &PipelineError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PipelineError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PipelineError {
	return &PipelineError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PipelineError
func Wrap(err error, code ErrorCode, message string) *PipelineError {
	if err == nil {
		return nil
	}
	return &PipelineError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PipelineError {
	if err == nil {
		return nil
	}
	return &PipelineError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PipelineError) WithDetail(key string, value interface{}) *PipelineError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithPath is shorthand for WithDetail("path", path)
func (e *PipelineError) WithPath(path string) *PipelineError {
	return e.WithDetail("path", path)
}

// IsErrorCode checks if an error has a specific error code, or a code that
// specializes it
func IsErrorCode(err error, code ErrorCode) bool {
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Code.Matches(code)
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PipelineError
func GetErrorCode(err error) ErrorCode {
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PipelineError
func GetErrorDetails(err error) map[string]interface{} {
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Details
	}
	return nil
}
