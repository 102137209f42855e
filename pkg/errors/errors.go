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

	// Archive errors
	ErrArchiveNotFound    ErrorCode = "ARCHIVE_NOT_FOUND"
	ErrArchiveUnsupported ErrorCode = "ARCHIVE_FORMAT_UNSUPPORTED"
	ErrArchiveCorrupt     ErrorCode = "ARCHIVE_CORRUPT"
	ErrPathTraversal      ErrorCode = "PATH_TRAVERSAL_REJECTED"
	ErrExtractionFailed   ErrorCode = "EXTRACTION_FAILED"

	// Install workflow errors
	ErrBackupWrite ErrorCode = "BACKUP_WRITE_FAILED"
	ErrMergeFailed ErrorCode = "MERGE_FAILED"
	ErrCleanFailed ErrorCode = "CLEAN_FAILED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"

	// Registry errors
	ErrRegistryLoad ErrorCode = "REGISTRY_LOAD"
	ErrRegistrySave ErrorCode = "REGISTRY_SAVE"
	ErrModNotFound  ErrorCode = "MOD_NOT_FOUND"
	ErrGameNotFound ErrorCode = "GAME_NOT_FOUND"

	// Loader / manifest errors
	ErrLoaderMissing ErrorCode = "LOADER_MISSING"
	ErrManifestWrite ErrorCode = "MANIFEST_WRITE"
)

// ModkeepError represents a structured error with code and details
type ModkeepError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ModkeepError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ModkeepError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ModkeepError) Is(target error) bool {
	var targetErr *ModkeepError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ModkeepError with the given code and message
func New(code ErrorCode, message string) *ModkeepError {
	return &ModkeepError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ModkeepError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ModkeepError {
	return &ModkeepError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ModkeepError
func Wrap(err error, code ErrorCode, message string) *ModkeepError {
	if err == nil {
		return nil
	}
	return &ModkeepError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ModkeepError {
	if err == nil {
		return nil
	}
	return &ModkeepError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ModkeepError) WithDetail(key string, value interface{}) *ModkeepError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var mkErr *ModkeepError
	if errors.As(err, &mkErr) {
		return mkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ModkeepError
func GetErrorCode(err error) ErrorCode {
	var mkErr *ModkeepError
	if errors.As(err, &mkErr) {
		return mkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ModkeepError
func GetErrorDetails(err error) map[string]interface{} {
	var mkErr *ModkeepError
	if errors.As(err, &mkErr) {
		return mkErr.Details
	}
	return nil
}
