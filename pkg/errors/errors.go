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

	// Bundle descriptor errors
	ErrInfoPlistRead  ErrorCode = "INFO_PLIST_READ"
	ErrInfoPlistParse ErrorCode = "INFO_PLIST_PARSE"

	// Version errors
	ErrVersionNotFound ErrorCode = "VERSION_NOT_FOUND"
	ErrVersionInvalid  ErrorCode = "VERSION_INVALID"

	// Storage errors
	ErrSettingsLoad      ErrorCode = "SETTINGS_LOAD"
	ErrSettingsSave      ErrorCode = "SETTINGS_SAVE"
	ErrDataRead          ErrorCode = "DATA_READ"
	ErrDataWrite         ErrorCode = "DATA_WRITE"
	ErrSerializerUnknown ErrorCode = "SERIALIZER_UNKNOWN"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrDirRemove     ErrorCode = "DIR_REMOVE"

	// Process errors
	ErrCommand ErrorCode = "COMMAND"

	// Test fixture errors
	ErrFixtureSetup    ErrorCode = "FIXTURE_SETUP"
	ErrFixtureTeardown ErrorCode = "FIXTURE_TEARDOWN"
)

// WfError represents a structured error with code and details
type WfError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *WfError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *WfError) Unwrap() error {
	return e.Wrapped
}

// Is matches any *WfError carrying the same code.
func (e *WfError) Is(target error) bool {
	var targetErr *WfError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new WfError with the given code and message
func New(code ErrorCode, message string) *WfError {
	return &WfError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new WfError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *WfError {
	return &WfError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a WfError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &WfError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message. A nil err yields nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &WfError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *WfError) WithDetail(key string, value interface{}) *WfError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var wfErr *WfError
	if errors.As(err, &wfErr) {
		return wfErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a WfError
func GetErrorCode(err error) ErrorCode {
	var wfErr *WfError
	if errors.As(err, &wfErr) {
		return wfErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a WfError
func GetErrorDetails(err error) map[string]interface{} {
	var wfErr *WfError
	if errors.As(err, &wfErr) {
		return wfErr.Details
	}
	return nil
}

// Join wraps the standard library join so callers need a single errors import.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
