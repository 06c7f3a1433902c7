// Package errors defines common error types for the application.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application. The three layout-specific kinds
// (MalformedInput, InfeasibleLayout, CapacityExhausted) match spec.md §7's
// error kinds exactly; the rest cover the service's ambient concerns
// (persistence, scheduling, config).
const (
	CodeUnknown = "UNKNOWN_ERROR"

	// CodeMalformedInput covers spec.md §7's "malformed input": a
	// non-positive minlen, a negative dimension, or an edge referencing a
	// node the host graph doesn't have. Surfaced before any phase writes
	// back, per the propagation policy.
	CodeMalformedInput = "MALFORMED_INPUT"

	// CodeInfeasibleLayout covers spec.md §7's "infeasible layout": the
	// network-simplex pivot loop's defensive safety bound tripped, so Rank
	// kept the last feasible ranking instead of continuing to pivot.
	CodeInfeasibleLayout = "INFEASIBLE_LAYOUT"

	// CodeCapacityExhausted covers spec.md §7's "capacity exhaustion": a
	// host graph larger than the configured node limit, or (beyond that
	// limit's reach) an allocation failure during array growth.
	CodeCapacityExhausted = "CAPACITY_EXHAUSTED"

	CodeDatabaseError  = "DATABASE_ERROR"
	CodeUploadError    = "UPLOAD_ERROR"
	CodeDownloadError  = "DOWNLOAD_ERROR"
	CodeNormalizeError = "NORMALIZE_ERROR"
	CodeEmptyFile      = "EMPTY_FILE"
	CodeParseError     = "PARSE_ERROR"
	CodeInvalidInput   = "INVALID_INPUT"
	CodeTimeout        = "TIMEOUT_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeConfigError    = "CONFIG_ERROR"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances.
var (
	// ErrMalformedInput, ErrInfeasibleLayout and ErrCapacityExhausted are
	// the three layout-pipeline error kinds spec.md §7 names; wrap them
	// with Wrap to attach the specific host-graph detail.
	ErrMalformedInput    = New(CodeMalformedInput, "malformed layout input")
	ErrInfeasibleLayout  = New(CodeInfeasibleLayout, "infeasible layout")
	ErrCapacityExhausted = New(CodeCapacityExhausted, "layout capacity exhausted")

	ErrDatabaseError  = New(CodeDatabaseError, "database error")
	ErrUploadError    = New(CodeUploadError, "upload error")
	ErrDownloadError  = New(CodeDownloadError, "download error")
	ErrNormalizeError = New(CodeNormalizeError, "normalize error")
	ErrEmptyFile      = New(CodeEmptyFile, "empty file")
	ErrParseError     = New(CodeParseError, "parse error")
	ErrInvalidInput   = New(CodeInvalidInput, "invalid input")
	ErrTimeout        = New(CodeTimeout, "operation timeout")
	ErrNotFound       = New(CodeNotFound, "resource not found")
	ErrConfigError    = New(CodeConfigError, "configuration error")
)

// IsMalformedInput checks if the error is a malformed-input error.
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// IsInfeasibleLayout checks if the error is an infeasible-layout error.
func IsInfeasibleLayout(err error) bool {
	return errors.Is(err, ErrInfeasibleLayout)
}

// IsCapacityExhausted checks if the error is a capacity-exhaustion error.
func IsCapacityExhausted(err error) bool {
	return errors.Is(err, ErrCapacityExhausted)
}

// IsDatabaseError checks if the error is a database error.
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabaseError)
}

// IsUploadError checks if the error is an upload error.
func IsUploadError(err error) bool {
	return errors.Is(err, ErrUploadError)
}

// IsDownloadError checks if the error is a download error.
func IsDownloadError(err error) bool {
	return errors.Is(err, ErrDownloadError)
}

// IsNormalizeError checks if the error is a normalize-phase error.
func IsNormalizeError(err error) bool {
	return errors.Is(err, ErrNormalizeError)
}

// IsEmptyFileError checks if the error is an empty file error.
func IsEmptyFileError(err error) bool {
	return errors.Is(err, ErrEmptyFile)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// ErrorInfo maps stable error names to their codes, for callers (e.g. the
// scheduler's APM callback payload) that need to report an error kind by
// name rather than by the AppError instance.
var ErrorInfo = map[string]string{
	"MalformedInput":    CodeMalformedInput,
	"InfeasibleLayout":  CodeInfeasibleLayout,
	"CapacityExhausted": CodeCapacityExhausted,
	"DatabaseError":     CodeDatabaseError,
	"UploadError":       CodeUploadError,
	"DownloadError":     CodeDownloadError,
	"NormalizeError":    CodeNormalizeError,
	"EmptyFile":         CodeEmptyFile,
}
