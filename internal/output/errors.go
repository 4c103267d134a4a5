// Package output renders slidegen CLI results for humans (lipgloss styled,
// plain when piped) or machines (--json), and maps errors to exit codes.
package output

import "errors"

// Exit codes returned by the CLI.
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// UserError reports bad input: unknown templates, invalid decks, bad flags.
func UserError(message string, cause error) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message, Cause: cause}
}

// SystemError reports failures outside the user's control such as I/O or a
// model call.
func SystemError(message string, cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// ExitCode extracts the exit code from err. Untyped errors are user errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
