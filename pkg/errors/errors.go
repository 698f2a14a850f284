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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Startup errors. Synchronous-phase failures carry these codes and
	// are surfaced to the user; deferred-phase failures are absorbed.
	ErrProfilePath ErrorCode = "PROFILE_PATH"
	ErrSyncPhase   ErrorCode = "SYNC_PHASE"

	// External tool errors
	ErrToolMissing ErrorCode = "TOOL_MISSING"
	ErrToolFailed  ErrorCode = "TOOL_FAILED"
	ErrCancelled   ErrorCode = "CANCELLED"

	// Git errors
	ErrNoUpstream   ErrorCode = "NO_UPSTREAM"
	ErrGitFailed    ErrorCode = "GIT_FAILED"
	ErrNotGitRepo   ErrorCode = "NOT_GIT_REPO"
	ErrBranchDelete ErrorCode = "BRANCH_DELETE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// SpryError represents a structured error with code and details
type SpryError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SpryError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SpryError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SpryError) Is(target error) bool {
	var targetErr *SpryError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SpryError with the given code and message
func New(code ErrorCode, message string) *SpryError {
	return &SpryError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SpryError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SpryError {
	return &SpryError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SpryError
func Wrap(err error, code ErrorCode, message string) *SpryError {
	if err == nil {
		return nil
	}
	return &SpryError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SpryError {
	if err == nil {
		return nil
	}
	return &SpryError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SpryError) WithDetail(key string, value interface{}) *SpryError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var spryErr *SpryError
	if errors.As(err, &spryErr) {
		return spryErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SpryError
func GetErrorCode(err error) ErrorCode {
	var spryErr *SpryError
	if errors.As(err, &spryErr) {
		return spryErr.Code
	}
	return ErrUnknown
}
