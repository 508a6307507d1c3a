package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess           = 0   // Indicates successful execution.
	ExitErrorGeneric      = 1   // Indicates a generic error.
	ExitErrorPlatform     = 2   // Indicates the OS counters could not be read.
	ExitErrorSampleWindow = 3   // Indicates the counters moved too little to compute usage.
	ExitErrorConfig       = 4   // Indicates a configuration or argument error.
	ExitErrorCanceled     = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Kind is a coarse classification of an error, used for exit codes, log
// fields and telemetry labels.
type Kind string

const (
	KindNone                     Kind = "ok"
	KindInvalidArgument          Kind = "invalid_argument"
	KindPlatformQuery            Kind = "platform_query"
	KindInsufficientSampleWindow Kind = "insufficient_sample_window"
	KindCancelled                Kind = "cancelled"
	KindConfig                   Kind = "config"
	KindUnknown                  Kind = "unknown"
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
// A sampling request with a non-positive interval, or one below the platform
// floor, is reported as a ValidationError.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// PlatformQueryError reports that an OS counter interface could not be read:
// permission denied, unreadable or malformed counter files, unsupported
// platform, or a failed system call.
type PlatformQueryError struct {
	// Source is the name of the counter source that failed (e.g. "procfs").
	Source string
	// Op is the operation that failed (e.g. "cpu", "memory").
	Op string
	// Cause is the underlying error.
	Cause error
}

// Error returns a formatted message naming the source and operation.
func (e PlatformQueryError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s query failed", e.Source, e.Op)
	}
	return fmt.Sprintf("%s: %s query failed: %v", e.Source, e.Op, e.Cause)
}

// Unwrap returns the underlying cause.
func (e PlatformQueryError) Unwrap() error { return e.Cause }

// InsufficientSampleWindowError reports that every core had to be excluded
// from the CPU delta computation: counters did not advance, went backwards, or
// no core was present in both snapshots.
type InsufficientSampleWindowError struct {
	// Cores is the number of distinct cores seen across both snapshots.
	Cores int
	// Excluded is the number of cores that were excluded.
	Excluded int
}

// Error returns a formatted message describing the degenerate window.
func (e InsufficientSampleWindowError) Error() string {
	return fmt.Sprintf("insufficient sample window: %d of %d cores excluded from cpu delta", e.Excluded, e.Cores)
}

// CancelledError reports that the caller's context ended before the sample
// could be completed. Cause is context.Canceled or context.DeadlineExceeded.
type CancelledError struct {
	Cause error
}

// Error returns the cancellation message.
func (e CancelledError) Error() string {
	if e.Cause == nil {
		return "sampling cancelled"
	}
	return fmt.Sprintf("sampling cancelled: %v", e.Cause)
}

// Unwrap returns the context error.
func (e CancelledError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// KindOf classifies err. A nil error is KindNone.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var (
		validationErr ValidationError
		platformErr   PlatformQueryError
		windowErr     InsufficientSampleWindowError
		cancelledErr  CancelledError
		configErr     ConfigError
	)
	switch {
	case errors.As(err, &cancelledErr):
		return KindCancelled
	case errors.As(err, &validationErr):
		return KindInvalidArgument
	case errors.As(err, &platformErr):
		return KindPlatformQuery
	case errors.As(err, &windowErr):
		return KindInsufficientSampleWindow
	case errors.As(err, &configErr):
		return KindConfig
	case IsContextError(err):
		return KindCancelled
	}
	return KindUnknown
}

// ExitCode maps err to the process exit code for its kind.
func ExitCode(err error) int {
	switch KindOf(err) {
	case KindNone:
		return ExitSuccess
	case KindInvalidArgument, KindConfig:
		return ExitErrorConfig
	case KindPlatformQuery:
		return ExitErrorPlatform
	case KindInsufficientSampleWindow:
		return ExitErrorSampleWindow
	case KindCancelled:
		return ExitErrorCanceled
	}
	return ExitErrorGeneric
}
