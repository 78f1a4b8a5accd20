// Package model defines the shared domain types for the privateerctl CLI.
//
// The tool itself is deliberately stateless: every value here is either a
// configuration snapshot or a transient error carrying an exit code. Nothing
// is persisted between invocations — the only durable state lives in Docker
// (containers, images, volumes), which this tool drives but does not track.
package model

import "fmt"

// ExitCode defines the CLI exit codes. These codes allow scripts and CI
// systems to programmatically distinguish pre-flight failures from
// failures of the wrapped docker compose invocation.
//
// Compose failures are a special case: the child process's own exit status
// is carried through unchanged (see the compose package), so a CLIError may
// hold a code outside this enumeration.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitMissingDependency indicates a required external executable
	// was not found on PATH. Nothing was invoked.
	ExitMissingDependency ExitCode = 2

	// ExitMissingCredential indicates a required credential environment
	// variable is unset or empty. Nothing was invoked.
	ExitMissingCredential ExitCode = 3

	// ExitConfigError indicates the configuration could not be resolved:
	// an unparseable option string, a broken project file, or a service
	// name the compose file does not define.
	ExitConfigError ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
