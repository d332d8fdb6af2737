// Package errortypes provides the categorized application errors shared by
// the summarizer, the profile store and the tool server.
package errortypes

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// ErrorType is the category of an AppError.
type ErrorType string

// Error types
const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError wraps an underlying error with a category, a message for humans
// and structured fields for logs and tool responses.
type AppError struct {
	Err       error
	Type      ErrorType
	Message   string
	StackInfo string
	Fields    map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Err.Error()
}

// Unwrap supports errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithField attaches a structured field to the error.
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// captureStack records the caller frames of the constructor, skipping
// runtime and testing frames.
func captureStack() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var builder strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "testing/") && !strings.Contains(frame.File, "/go/src/") {
			fmt.Fprintf(&builder, "%s:%d %s\n", frame.File, frame.Line, frame.Function)
		}
		if !more {
			break
		}
	}
	return builder.String()
}

func newAppError(errType ErrorType, err error, message string) *AppError {
	if err == nil {
		err = errors.New("unknown error")
	}

	return &AppError{
		Err:       err,
		Type:      errType,
		Message:   message,
		StackInfo: captureStack(),
		Fields:    make(map[string]interface{}),
	}
}

// ValidationError creates a new validation error
func ValidationError(err error, message string) *AppError {
	return newAppError(ErrorTypeValidation, err, message)
}

// ConfigError creates a new configuration error
func ConfigError(err error, message string) *AppError {
	return newAppError(ErrorTypeConfig, err, message)
}

// DatabaseError creates a new database error
func DatabaseError(err error, message string) *AppError {
	return newAppError(ErrorTypeDatabase, err, message)
}

// NotFoundError creates a new not-found error
func NotFoundError(err error, message string) *AppError {
	return newAppError(ErrorTypeNotFound, err, message)
}

// InternalError creates a new internal error
func InternalError(err error, message string) *AppError {
	return newAppError(ErrorTypeInternal, err, message)
}

// LogError logs err with the given logger, or slog.Default() when nil.
// AppErrors are logged with their type, stack and fields.
func LogError(logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		args := []any{
			"type", string(appErr.Type),
			"original_error", appErr.Err.Error(),
		}
		if appErr.StackInfo != "" {
			args = append(args, "stack", appErr.StackInfo)
		}
		for k, v := range appErr.Fields {
			args = append(args, k, v)
		}
		logger.Error(appErr.Message, args...)
		return
	}
	logger.Error(err.Error(), "error", err)
}

// IsType reports whether err wraps an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	return IsType(err, ErrorTypeConfig)
}

// IsDatabaseError checks if an error is a database error
func IsDatabaseError(err error) bool {
	return IsType(err, ErrorTypeDatabase)
}

// IsNotFoundError checks if an error is a not-found error
func IsNotFoundError(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}
