package model

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes failures by how they propagate
type ErrorKind string

const (
	// ErrorKindConfig is a corrupt or unreadable preferences document; recovered with defaults
	ErrorKindConfig ErrorKind = "config"

	// ErrorKindValidation is invalid interactive input; recovered by re-prompting
	ErrorKindValidation ErrorKind = "validation"

	// ErrorKindExtraction is a preview or fetch failure; aborts the current iteration
	ErrorKindExtraction ErrorKind = "extraction"

	// ErrorKindDependencyMissing is a required external executable that is absent; fatal
	ErrorKindDependencyMissing ErrorKind = "dependency_missing"

	// ErrorKindInterrupted is a user-initiated cancellation; ends the session cleanly
	ErrorKindInterrupted ErrorKind = "interrupted"
)

// Error is a categorized application error
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Remedy  string // user instructions, set for dependency errors
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	} else if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Op == "" {
		return fmt.Sprintf("[%s] %s", e.Kind, msg)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Op, msg)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// UserMessage returns the text shown to the user
func (e *Error) UserMessage() string {
	if e.Message != "" && e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return string(e.Kind)
}

// Sentinels usable with errors.Is
var (
	ErrConfig            = &Error{Kind: ErrorKindConfig}
	ErrValidation        = &Error{Kind: ErrorKindValidation}
	ErrExtraction        = &Error{Kind: ErrorKindExtraction}
	ErrDependencyMissing = &Error{Kind: ErrorKindDependencyMissing}
	ErrInterrupted       = &Error{Kind: ErrorKindInterrupted}
)

// NewConfigError creates a config error
func NewConfigError(op, message string, cause error) *Error {
	return &Error{Kind: ErrorKindConfig, Op: op, Message: message, Cause: cause}
}

// NewValidationError creates a validation error
func NewValidationError(op, message string, cause error) *Error {
	return &Error{Kind: ErrorKindValidation, Op: op, Message: message, Cause: cause}
}

// NewExtractionError creates an extraction error
func NewExtractionError(op, message string, cause error) *Error {
	return &Error{Kind: ErrorKindExtraction, Op: op, Message: message, Cause: cause}
}

// NewDependencyMissingError creates a fatal dependency error with remediation text
func NewDependencyMissingError(dependency, remedy string, cause error) *Error {
	return &Error{
		Kind:    ErrorKindDependencyMissing,
		Op:      "check dependencies",
		Message: fmt.Sprintf("%s not found", dependency),
		Remedy:  remedy,
		Cause:   cause,
	}
}

// NewInterruptedError creates an interruption error
func NewInterruptedError(op string, cause error) *Error {
	return &Error{Kind: ErrorKindInterrupted, Op: op, Message: "operation canceled", Cause: cause}
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
