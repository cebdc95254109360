// Package errors provides standardized error handling for posture.
// It defines sentinel errors and utilities for error wrapping with context.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinel errors for common failure scenarios
var (
	// ErrRootUser indicates the process is running as the superuser,
	// which the audit refuses: it is designed for an unprivileged
	// operator who elevates per-command.
	ErrRootUser = stderrors.New("running as root")

	// ErrSudoUnavailable indicates passwordless sudo is not configured
	ErrSudoUnavailable = stderrors.New("passwordless sudo unavailable")

	// ErrTimeoutExceeded indicates a command or operation exceeded its timeout
	ErrTimeoutExceeded = stderrors.New("timeout exceeded")

	// ErrCommandFailed indicates an external inspection command failed
	ErrCommandFailed = stderrors.New("command failed")

	// ErrCommandNotFound indicates a required command is not available
	ErrCommandNotFound = stderrors.New("command not found")

	// ErrInvalidConfig indicates configuration is invalid or incomplete
	ErrInvalidConfig = stderrors.New("invalid configuration")

	// ErrUnknownProbe indicates a probe name that is not registered
	ErrUnknownProbe = stderrors.New("unknown probe")

	// ErrParseFailure indicates parsing of command output failed
	ErrParseFailure = stderrors.New("parse failure")
)

// Wrap wraps an error with context message and preserves the underlying error chain.
// Use this to add context while maintaining error identity for stderrors.Is checks.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// New creates a new error with formatted message.
// Use this for new errors that don't wrap existing errors.
func New(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around stderrors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
// This is a convenience wrapper around stderrors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
