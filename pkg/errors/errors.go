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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors. ErrConfigInvalid is the ConfigurationError class:
	// malformed list sources, unparsable versions and invalid option
	// combinations. It is always raised before any output is written.
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Metadata errors
	ErrLoad            ErrorCode = "LOAD"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"
	ErrNoModules       ErrorCode = "NO_MODULES"

	// Rendering errors
	ErrRender ErrorCode = "RENDER"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
)

// ApishapeError represents a structured error with code and details
type ApishapeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ApishapeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ApishapeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ApishapeError) Is(target error) bool {
	var targetErr *ApishapeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ApishapeError with the given code and message
func New(code ErrorCode, message string) *ApishapeError {
	return &ApishapeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ApishapeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ApishapeError {
	return &ApishapeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an ApishapeError
func Wrap(err error, code ErrorCode, message string) *ApishapeError {
	if err == nil {
		return nil
	}
	return &ApishapeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ApishapeError {
	if err == nil {
		return nil
	}
	return &ApishapeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ApishapeError) WithDetail(key string, value interface{}) *ApishapeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ApishapeError) WithDetails(details map[string]interface{}) *ApishapeError {
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
	var apiErr *ApishapeError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an ApishapeError
func GetErrorCode(err error) ErrorCode {
	var apiErr *ApishapeError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an ApishapeError
func GetErrorDetails(err error) map[string]interface{} {
	var apiErr *ApishapeError
	if errors.As(err, &apiErr) {
		return apiErr.Details
	}
	return nil
}

// IsConfigurationError reports whether err belongs to the configuration class.
func IsConfigurationError(err error) bool {
	switch GetErrorCode(err) {
	case ErrConfigInvalid, ErrConfigLoad, ErrConfigParse:
		return true
	}
	return false
}
