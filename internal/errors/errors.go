package errors

import (
	"errors"
	"fmt"
)

// Exit codes for forage-tools
const (
	ExitSuccess            = 0
	ExitGeneralError       = 1
	ExitPathEscape         = 2
	ExitInvalidPackageName = 3
	ExitExecutionTimeout   = 4
	ExitExecutionFailure   = 5
	ExitConfigError        = 6
	ExitIOFailure          = 7
)

// Kind classifies a ToolError.
type Kind string

const (
	KindGeneral            Kind = "general"
	KindPathEscape         Kind = "path_escape"
	KindInvalidPackageName Kind = "invalid_package_name"
	KindExecutionTimeout   Kind = "execution_timeout"
	KindExecutionFailure   Kind = "execution_failure"
	KindIOFailure          Kind = "io_failure"
	KindConfig             Kind = "config"
)

// Sentinels for errors.Is matching on kind.
var (
	ErrPathEscape         = &ToolError{Kind: KindPathEscape}
	ErrInvalidPackageName = &ToolError{Kind: KindInvalidPackageName}
	ErrExecutionTimeout   = &ToolError{Kind: KindExecutionTimeout}
	ErrExecutionFailure   = &ToolError{Kind: KindExecutionFailure}
	ErrIOFailure          = &ToolError{Kind: KindIOFailure}
	ErrConfig             = &ToolError{Kind: KindConfig}
)

// Marker prefixes every rendered error result.
const Marker = "Error: "

// ToolError is the base error type for forage-tools
type ToolError struct {
	Code    int
	Kind    Kind
	Message string
	Cause   error
}

func (e *ToolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ToolError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a ToolError of the same kind. A target
// with an empty message matches any error of its kind.
func (e *ToolError) Is(target error) bool {
	t, ok := target.(*ToolError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// ExitCode returns the exit code for this error
func (e *ToolError) ExitCode() int {
	return e.Code
}

// New creates a new ToolError
func New(code int, kind Kind, message string) *ToolError {
	return &ToolError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an existing error with a ToolError
func Wrap(code int, kind Kind, message string, cause error) *ToolError {
	return &ToolError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// PathEscape returns an error for a path that resolves outside the workspace
func PathEscape(path string) *ToolError {
	return New(ExitPathEscape, KindPathEscape, fmt.Sprintf("illegal path access: %s (outside workspace)", path))
}

// InvalidPackageName returns an error for a rejected package name
func InvalidPackageName(name string) *ToolError {
	return New(ExitInvalidPackageName, KindInvalidPackageName, fmt.Sprintf("invalid package name format: %s", name))
}

// ExecutionTimeout returns an error for a command that exceeded its time budget
func ExecutionTimeout(seconds int) *ToolError {
	return New(ExitExecutionTimeout, KindExecutionTimeout, fmt.Sprintf("command timed out after %ds", seconds))
}

// ExecutionFailure returns an error for a command that could not be run
func ExecutionFailure(message string, cause error) *ToolError {
	return Wrap(ExitExecutionFailure, KindExecutionFailure, message, cause)
}

// IOFailure returns an error for filesystem operations
func IOFailure(message string, cause error) *ToolError {
	return Wrap(ExitIOFailure, KindIOFailure, message, cause)
}

// NotFound returns an I/O error for a missing file or directory
func NotFound(what, path string) *ToolError {
	return New(ExitIOFailure, KindIOFailure, fmt.Sprintf("%s %s does not exist", what, path))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *ToolError {
	return Wrap(ExitConfigError, KindConfig, message, cause)
}

// Render converts an error into the textual result handed back to callers.
func Render(err error) string {
	if err == nil {
		return ""
	}
	return Marker + err.Error()
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr.ExitCode()
	}
	return ExitGeneralError
}

// GetKind extracts the kind from an error chain
func GetKind(err error) Kind {
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr.Kind
	}
	return KindGeneral
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
