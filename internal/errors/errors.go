// Package errors provides structured error handling for sysstatus.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Category represents the error category.
type Category string

// Error categories.
const (
	CategoryInput    Category = "input"
	CategoryConfig   Category = "configuration"
	CategoryReport   Category = "report"
	CategoryRender   Category = "render"
	CategoryCollect  Category = "collect"
	CategoryServer   Category = "server"
	CategoryIO       Category = "io"
	CategoryInternal Category = "internal"
)

// Error codes for each category.
const (
	// Input errors
	CodeSizeEmpty    = "SIZE_EMPTY"
	CodeSizeInvalid  = "SIZE_INVALID"
	CodeSizeOverflow = "SIZE_OVERFLOW"

	// Config errors
	CodeConfigNotFound   = "CONFIG_NOT_FOUND"
	CodeConfigParse      = "CONFIG_PARSE"
	CodeConfigValidation = "CONFIG_VALIDATION"

	// Report errors
	CodeReportCycle    = "REPORT_CYCLE"
	CodeReportTooDeep  = "REPORT_TOO_DEEP"
	CodeReportDecode   = "REPORT_DECODE"
	CodeReportNilValue = "REPORT_NIL_SECTION"

	// Render errors
	CodeRenderFormat = "RENDER_FORMAT"
	CodeRenderWrite  = "RENDER_WRITE"

	// Collect errors
	CodeCollectProvider = "COLLECT_PROVIDER"
	CodeCollectCanceled = "COLLECT_CANCELED"

	// Server errors
	CodeServerAction  = "SERVER_ACTION"
	CodeServerMethod  = "SERVER_METHOD"
	CodeServerRequest = "SERVER_REQUEST"

	// IO errors
	CodeFileRead = "FILE_READ"

	// Internal errors
	CodeInternal = "INTERNAL"
)

// StatusError is a structured error with category, code, and user-friendly hints.
type StatusError struct {
	Category Category
	Code     string
	Message  string
	Cause    error
	Hint     string
	Context  map[string]string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s/%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s/%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *StatusError) Unwrap() error {
	return e.Cause
}

// UserFriendly returns a user-friendly error message with hints.
func (e *StatusError) UserFriendly() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Message))

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf("Cause: %s\n", e.Cause.Error()))
	}

	if e.Hint != "" {
		sb.WriteString(fmt.Sprintf("\nHint: %s\n", e.Hint))
	}

	if len(e.Context) > 0 {
		sb.WriteString("\nContext:\n")
		for _, k := range e.ContextKeys() {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, e.Context[k]))
		}
	}

	return sb.String()
}

// ContextKeys returns the context keys in sorted order.
func (e *StatusError) ContextKeys() []string {
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithCause adds a cause to the error.
func (e *StatusError) WithCause(cause error) *StatusError {
	e.Cause = cause
	return e
}

// WithHint adds a hint to the error.
func (e *StatusError) WithHint(hint string) *StatusError {
	e.Hint = hint
	return e
}

// WithContext adds context to the error.
func (e *StatusError) WithContext(key, value string) *StatusError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// New creates a new StatusError.
func New(category Category, code string, message string) *StatusError {
	return &StatusError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  make(map[string]string),
	}
}

// Newf creates a new StatusError with formatted message.
func Newf(category Category, code string, format string, args ...interface{}) *StatusError {
	return New(category, code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error as a StatusError.
func Wrap(err error, category Category, code string, message string) *StatusError {
	e := New(category, code, message)
	e.Cause = err
	return e
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, category Category, code string, format string, args ...interface{}) *StatusError {
	return Wrap(err, category, code, fmt.Sprintf(format, args...))
}

// Is checks if the error is a StatusError with the given code.
func Is(err error, code string) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == code
	}
	return false
}

// GetCategory returns the category of a StatusError, or empty string if not a StatusError.
func GetCategory(err error) Category {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Category
	}
	return ""
}

// GetCode returns the code of a StatusError, or empty string if not a StatusError.
func GetCode(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return ""
}

// AsStatusError attempts to convert an error to a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// Common pre-defined errors.
var (
	ErrSizeEmpty = &StatusError{
		Category: CategoryInput,
		Code:     CodeSizeEmpty,
		Message:  "size string is empty",
		Hint:     "Use a number with an optional K, M, G, T or P suffix, for example 256M",
	}

	ErrReportCycle = &StatusError{
		Category: CategoryReport,
		Code:     CodeReportCycle,
		Message:  "report section contains itself",
		Hint:     "A section must not be nested inside one of its own children",
	}

	ErrConfigNotFound = &StatusError{
		Category: CategoryConfig,
		Code:     CodeConfigNotFound,
		Message:  "config file not found",
		Hint:     "Create .sysstatus.json in the working directory or pass --config",
	}
)

// Clone creates a copy of the error that can be modified without affecting the original.
func (e *StatusError) Clone() *StatusError {
	clone := &StatusError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Cause:    e.Cause,
		Hint:     e.Hint,
		Context:  make(map[string]string),
	}
	for k, v := range e.Context {
		clone.Context[k] = v
	}
	return clone
}

// Input error constructors.

// SizeEmpty creates an empty size error.
func SizeEmpty() *StatusError {
	return ErrSizeEmpty.Clone()
}

// SizeInvalid creates an error for a size string whose numeric part does not parse.
func SizeInvalid(text string, cause error) *StatusError {
	return Newf(CategoryInput, CodeSizeInvalid, "invalid size %q", text).
		WithCause(cause).
		WithHint("Use a number with an optional K, M, G, T or P suffix, for example 256M").
		WithContext("input", text)
}

// SizeOverflow creates an error for a size that does not fit in 64 bits.
func SizeOverflow(text string) *StatusError {
	return Newf(CategoryInput, CodeSizeOverflow, "size %q overflows a 64-bit byte count", text).
		WithContext("input", text)
}

// Report error constructors.

// ReportCycle creates a cycle error for the section reached at path.
func ReportCycle(path string) *StatusError {
	return ErrReportCycle.Clone().WithContext("path", path)
}

// ReportTooDeep creates an error for a section nested deeper than limit.
func ReportTooDeep(path string, limit int) *StatusError {
	return Newf(CategoryReport, CodeReportTooDeep, "report nesting exceeds %d levels", limit).
		WithContext("path", path)
}

// ReportDecode wraps a decoding failure of an external report.
func ReportDecode(cause error) *StatusError {
	return Wrap(cause, CategoryReport, CodeReportDecode, "failed to decode report")
}

// Config error constructors.

// ConfigNotFound creates a config not found error.
func ConfigNotFound(path string) *StatusError {
	return ErrConfigNotFound.Clone().WithContext("path", path)
}

// ConfigParse wraps a config parse failure.
func ConfigParse(path string, cause error) *StatusError {
	return Wrapf(cause, CategoryConfig, CodeConfigParse, "failed to parse %s", path).
		WithHint("The config file is JSON; comments and trailing commas are allowed")
}

// ConfigValidation creates a config validation error for field.
func ConfigValidation(field, message string) *StatusError {
	return Newf(CategoryConfig, CodeConfigValidation, "%s: %s", field, message).
		WithContext("field", field)
}

// Render error constructors.

// UnknownFormat creates an error for an unsupported output format.
func UnknownFormat(format string, supported []string) *StatusError {
	return Newf(CategoryRender, CodeRenderFormat, "unknown output format %q", format).
		WithHint("Supported formats: " + strings.Join(supported, ", "))
}

// FileRead wraps a file read failure.
func FileRead(path string, cause error) *StatusError {
	return Wrapf(cause, CategoryIO, CodeFileRead, "failed to read %s", path).
		WithContext("path", path)
}
