package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Build file errors
	ErrBuildfileNotFound ErrorCode = "BUILDFILE_NOT_FOUND"
	ErrBuildfileRead     ErrorCode = "BUILDFILE_READ"
	ErrParse             ErrorCode = "PARSE"

	// Graph errors
	ErrUnknownDependency ErrorCode = "UNKNOWN_DEPENDENCY"
	ErrCycleDetected     ErrorCode = "CYCLE_DETECTED"
	ErrUnknownTarget     ErrorCode = "UNKNOWN_TARGET"

	// Execution errors
	ErrRecipeFailure ErrorCode = "RECIPE_FAILURE"
	ErrShellStart    ErrorCode = "SHELL_START"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Ancillary commands
	ErrInstall ErrorCode = "INSTALL"
	ErrReport  ErrorCode = "REPORT"
)

// Detail keys shared by the engine packages.
const (
	DetailLine        = "line"
	DetailTarget      = "target"
	DetailDependency  = "dependency"
	DetailCycle       = "cycle"
	DetailCommand     = "command"
	DetailExitCode    = "exit_code"
	DetailSuggestions = "suggestions"
	DetailPath        = "path"
)

// Process exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	// ExitInvalidBuild is returned for errors found before any recipe runs:
	// parse errors, unknown dependencies or targets, and cycles.
	ExitInvalidBuild = 2
)

// MakeoverError represents a structured error with code and details
type MakeoverError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MakeoverError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MakeoverError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MakeoverError) Is(target error) bool {
	var targetErr *MakeoverError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MakeoverError with the given code and message
func New(code ErrorCode, message string) *MakeoverError {
	return &MakeoverError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MakeoverError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MakeoverError {
	return &MakeoverError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MakeoverError
func Wrap(err error, code ErrorCode, message string) *MakeoverError {
	if err == nil {
		return nil
	}
	return &MakeoverError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MakeoverError {
	if err == nil {
		return nil
	}
	return &MakeoverError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MakeoverError) WithDetail(key string, value interface{}) *MakeoverError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *MakeoverError) WithDetails(details map[string]interface{}) *MakeoverError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// ParseError reports malformed build file syntax at a 1-based line.
func ParseError(line int, reason string) *MakeoverError {
	return Newf(ErrParse, "line %d: %s", line, reason).
		WithDetail(DetailLine, line)
}

// UnknownDependency reports a dependency that is not declared as a target.
func UnknownDependency(target, dependency string) *MakeoverError {
	return Newf(ErrUnknownDependency, "target '%s' depends on undeclared target '%s'", target, dependency).
		WithDetail(DetailTarget, target).
		WithDetail(DetailDependency, dependency)
}

// CycleDetected reports a dependency cycle. The members are listed in
// traversal order with the closing member repeated at the end.
func CycleDetected(members []string) *MakeoverError {
	cycle := append([]string(nil), members...)
	return Newf(ErrCycleDetected, "circular dependency: %s", strings.Join(cycle, " -> ")).
		WithDetail(DetailCycle, cycle)
}

// UnknownTarget reports a requested target that is not declared.
func UnknownTarget(name string, suggestions []string) *MakeoverError {
	msg := fmt.Sprintf("no target named '%s'", name)
	if len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(suggestions, ", "))
	}
	return New(ErrUnknownTarget, msg).
		WithDetail(DetailTarget, name).
		WithDetail(DetailSuggestions, suggestions)
}

// RecipeFailure reports a recipe line that exited non-zero.
func RecipeFailure(target, command string, exitCode int) *MakeoverError {
	return Newf(ErrRecipeFailure, "target '%s': command '%s' exited with status %d", target, command, exitCode).
		WithDetail(DetailTarget, target).
		WithDetail(DetailCommand, command).
		WithDetail(DetailExitCode, exitCode)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var makeoverErr *MakeoverError
	if errors.As(err, &makeoverErr) {
		return makeoverErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MakeoverError
func GetErrorCode(err error) ErrorCode {
	var makeoverErr *MakeoverError
	if errors.As(err, &makeoverErr) {
		return makeoverErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MakeoverError
func GetErrorDetails(err error) map[string]interface{} {
	var makeoverErr *MakeoverError
	if errors.As(err, &makeoverErr) {
		return makeoverErr.Details
	}
	return nil
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetErrorCode(err) {
	case ErrParse, ErrUnknownDependency, ErrCycleDetected, ErrUnknownTarget:
		return ExitInvalidBuild
	case ErrRecipeFailure:
		if code, ok := GetErrorDetails(err)[DetailExitCode].(int); ok && code != 0 {
			return code
		}
	}
	return ExitFailure
}
