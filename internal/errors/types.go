// Package errors provides the typed error used across docsite. Every failure
// that aborts a build carries a category, a stable code and, where known, the
// file that caused it.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeAlias      ErrorType = "alias"
	ErrorTypeReflection ErrorType = "reflection"
	ErrorTypeBuild      ErrorType = "build"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodePathNotFound      = "ERR_PATH_NOT_FOUND"
	ErrCodeAliasOutsideDir   = "ERR_ALIAS_OUTSIDE_DIR"
	ErrCodeBreakpointMissing = "ERR_BREAKPOINT_MISSING"
	ErrCodeIconNotFound      = "ERR_ICON_NOT_FOUND"
	ErrCodeInvalidIconName   = "ERR_INVALID_ICON_NAME"
	ErrCodeSpritesheetFormat = "ERR_SPRITESHEET_FORMAT"
	ErrCodeModuleNotFound    = "ERR_MODULE_NOT_FOUND"
	ErrCodeReflectionInvalid = "ERR_REFLECTION_INVALID"
	ErrCodeTSConfigInvalid   = "ERR_TSCONFIG_INVALID"
	ErrCodeFileNotFound      = "ERR_FILE_NOT_FOUND"
	ErrCodeConfigInvalid     = "ERR_CONFIG_INVALID"
	ErrCodePathTraversal     = "ERR_PATH_TRAVERSAL"
	ErrCodeRenderFailed      = "ERR_RENDER_FAILED"
	ErrCodeWriteFailed       = "ERR_WRITE_FAILED"
)

// DocsiteError is a structured error type with context.
type DocsiteError struct {
	Type     ErrorType
	Code     string
	Message  string
	Cause    error
	Context  map[string]interface{}
	FilePath string
}

// Error implements the error interface.
func (e *DocsiteError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *DocsiteError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DocsiteError of the same type and code.
func (e *DocsiteError) Is(target error) bool {
	var t *DocsiteError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *DocsiteError) WithContext(key string, value interface{}) *DocsiteError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithFile records the file the error refers to.
func (e *DocsiteError) WithFile(path string) *DocsiteError {
	e.FilePath = path

	return e
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *DocsiteError {
	return &DocsiteError{Type: ErrorTypeValidation, Code: code, Message: message}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *DocsiteError {
	return &DocsiteError{Type: ErrorTypeIO, Code: code, Message: message, Cause: cause}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string, cause error) *DocsiteError {
	return &DocsiteError{Type: ErrorTypeConfig, Code: code, Message: message, Cause: cause}
}

// NewAliasError creates an alias resolution error.
func NewAliasError(code, message string) *DocsiteError {
	return &DocsiteError{Type: ErrorTypeAlias, Code: code, Message: message}
}

// NewReflectionError creates an error about the reflection tree.
func NewReflectionError(code, message string, cause error) *DocsiteError {
	return &DocsiteError{Type: ErrorTypeReflection, Code: code, Message: message, Cause: cause}
}

// NewBuildError creates a build error.
func NewBuildError(code, message string, cause error) *DocsiteError {
	return &DocsiteError{Type: ErrorTypeBuild, Code: code, Message: message, Cause: cause}
}

// HasCode reports whether err wraps a DocsiteError with the given code.
func HasCode(err error, code string) bool {
	var de *DocsiteError
	if errors.As(err, &de) {
		return de.Code == code
	}

	return false
}

// TypeOf returns the category of err, or ErrorTypeInternal for foreign errors.
func TypeOf(err error) ErrorType {
	var de *DocsiteError
	if errors.As(err, &de) {
		return de.Type
	}

	return ErrorTypeInternal
}

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// ErrorHandler reports errors that reach the top of a command.
type ErrorHandler struct {
	logger Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err with its structured fields.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	var de *DocsiteError
	if !errors.As(err, &de) {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	fields := []interface{}{"type", string(de.Type), "code", de.Code}
	if de.FilePath != "" {
		fields = append(fields, "file", de.FilePath)
	}
	for k, v := range de.Context {
		fields = append(fields, k, v)
	}

	switch de.Type {
	case ErrorTypeValidation:
		h.logger.Warn(ctx, err, "Validation error occurred", fields...)
	default:
		h.logger.Error(ctx, err, "Build aborted", fields...)
	}
}
