package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Configuration errors
	ErrorTypeInvalidConfiguration ErrorType = "invalid_configuration"
	ErrorTypeUnsupported          ErrorType = "unsupported"

	// System errors
	ErrorTypeInternal ErrorType = "internal"
	ErrorTypeCanceled ErrorType = "canceled"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// Error codes for specific scenarios
const (
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeUnsupported          = "UNSUPPORTED"
	CodeEncodeFailed         = "ENCODE_FAILED"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeCanceled             = "CANCELED"
)

// Sentinels for errors.Is matching. AppError.Is compares by Type, so any
// AppError of the same type matches its sentinel.
var (
	ErrInvalidConfiguration = New(ErrorTypeInvalidConfiguration, "invalid configuration")
	ErrUnsupported          = New(ErrorTypeUnsupported, "unsupported")
	ErrInternal             = New(ErrorTypeInternal, "internal error")
	ErrCanceled             = New(ErrorTypeCanceled, "canceled")
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType      `json:"type"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	InnerError error          `json:"-"`
	Stack      []string       `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Type)
	}
	if e.InnerError != nil {
		return msg + ": " + e.InnerError.Error()
	}
	return msg
}

// Unwrap returns the inner error
func (e *AppError) Unwrap() error {
	return e.InnerError
}

// WithMessage adds a message to the error
func (e *AppError) WithMessage(msg string) *AppError {
	e.Message = msg
	return e
}

// WithCode adds a code to the error
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithInnerError sets the inner error
func (e *AppError) WithInnerError(err error) *AppError {
	e.InnerError = err
	return e
}

// WithStack captures the call stack
func (e *AppError) WithStack() *AppError {
	e.Stack = captureStack(3)
	return e
}

// Is checks if this error is of a specific type
func (e *AppError) Is(target error) bool {
	if targetApp, ok := target.(*AppError); ok {
		return e.Type == targetApp.Type
	}
	return false
}

// New creates a new AppError
func New(errType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    string(errType),
	}
}

// FromError converts a standard error to AppError
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return &AppError{
		Type:       ErrorTypeUnknown,
		Message:    err.Error(),
		InnerError: err,
	}
}

// WrapWithType wraps an error with a specific type
func WrapWithType(err error, errType ErrorType, message string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		InnerError: err,
		Code:       string(errType),
	}
}

// NewInvalidConfiguration reports a configuration value that cannot be built.
func NewInvalidConfiguration(field string, value any, reason string) *AppError {
	return New(ErrorTypeInvalidConfiguration, fmt.Sprintf("invalid value for %s: %v (%s)", field, value, reason)).
		WithCode(CodeInvalidConfiguration).
		WithDetail("field", field).
		WithDetail("value", value).
		WithDetail("reason", reason)
}

func NewUnsupported(what string, value any) *AppError {
	return New(ErrorTypeUnsupported, fmt.Sprintf("unsupported %s: %v", what, value)).
		WithCode(CodeUnsupported).
		WithDetail(what, value)
}

// NewEncodeFailed wraps an image encoder failure.
func NewEncodeFailed(format string, err error) *AppError {
	return WrapWithType(err, ErrorTypeInternal, fmt.Sprintf("encode %s", format)).
		WithCode(CodeEncodeFailed).
		WithDetail("format", format)
}

func NewInternal(message string) *AppError {
	return New(ErrorTypeInternal, message).WithCode(CodeInternalError)
}

func NewCanceled(err error) *AppError {
	return WrapWithType(err, ErrorTypeCanceled, "canceled").WithCode(CodeCanceled)
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// ErrorChain represents a chain of errors
type ErrorChain struct {
	errors []*AppError
}

// NewErrorChain creates a new error chain
func NewErrorChain() *ErrorChain {
	return &ErrorChain{
		errors: make([]*AppError, 0),
	}
}

// Add adds an error to the chain
func (c *ErrorChain) Add(err *AppError) *ErrorChain {
	if err != nil {
		c.errors = append(c.errors, err)
	}
	return c
}

// HasErrors checks if the chain has errors
func (c *ErrorChain) HasErrors() bool {
	return len(c.errors) > 0
}

// Error returns the combined error message
func (c *ErrorChain) Error() string {
	if !c.HasErrors() {
		return ""
	}

	messages := make([]string, 0, len(c.errors))
	for _, err := range c.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, " | ")
}

// Errors returns all errors in the chain
func (c *ErrorChain) Errors() []*AppError {
	return c.errors
}

// First returns the first error in the chain
func (c *ErrorChain) First() *AppError {
	if len(c.errors) == 0 {
		return nil
	}
	return c.errors[0]
}

// Is matches the chain against target if any member matches.
func (c *ErrorChain) Is(target error) bool {
	for _, err := range c.errors {
		if err.Is(target) {
			return true
		}
	}
	return false
}

// Err returns the chain as an error, or nil when empty.
func (c *ErrorChain) Err() error {
	if !c.HasErrors() {
		return nil
	}
	return c
}

// captureStack captures the call stack
func captureStack(skip int) []string {
	var stack []string
	for i := skip; i < 10; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		funcName := fn.Name()
		// Shorten function name
		if idx := strings.LastIndex(funcName, "/"); idx >= 0 {
			funcName = funcName[idx+1:]
		}

		stack = append(stack, fmt.Sprintf("%s:%d %s", file, line, funcName))
	}
	return stack
}
