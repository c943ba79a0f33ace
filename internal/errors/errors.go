package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3 // variants of one family disagree on a valid input
	ExitErrorConfig   = 4 // bad flags, arguments or config file
	ExitErrorCanceled = 130
)

// ConfigError reports unusable user configuration: flags, environment,
// config file or positional arguments.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError is returned for an operation that refused to evaluate its
// arguments. Cause holds the reason, usually a ValidationError.
type CalculationError struct {
	Operation string
	Cause     error
}

func (e CalculationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Cause)
}

func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError reports an evaluation that did not return within Limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError reports input an operation cannot accept. Field names the
// offending argument or operation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError prefixes err with a formatted message, keeping it reachable by
// errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err comes from a canceled or expired
// context, TimeoutError included.
func IsContextError(err error) bool {
	var timeoutErr TimeoutError
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &timeoutErr)
}
