package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/bookable/internal/logger"
)

var (
	// ErrPrecondition is wrapped by every error caused by a caller passing input
	// that violates a documented precondition (reversed windows, unsorted exceptions...).
	ErrPrecondition = stderrors.New("precondition violated")

	// ErrConfiguration is wrapped by errors caused by invalid configuration,
	// such as an unrecognized IANA timezone name.
	ErrConfiguration = stderrors.New("configuration error")
)

// PreconditionError names the operation and the precondition the caller broke.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Op, ErrPrecondition, e.Reason)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// Precondition returns a *PreconditionError for op with a formatted reason.
func Precondition(op, format string, args ...interface{}) error {
	return &PreconditionError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// ConfigError reports a setting whose value could not be used.
type ConfigError struct {
	Setting string
	Value   string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: invalid %s %q", ErrConfiguration, e.Setting, e.Value)
	}
	return fmt.Sprintf("%v: invalid %s %q: %v", ErrConfiguration, e.Setting, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfiguration}
	}
	return []error{ErrConfiguration, e.Err}
}

// Configuration returns a *ConfigError for the given setting.
func Configuration(setting, value string, err error) error {
	return &ConfigError{Setting: setting, Value: value, Err: err}
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
