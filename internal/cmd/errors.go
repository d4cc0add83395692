package cmd

import (
	"errors"
	"io/fs"
)

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitConfigError indicates the project configuration is invalid.
	ExitConfigError = 2

	// ExitBuildError indicates the page render or asset copy failed.
	ExitBuildError = 3

	// ExitNotFound indicates the project or a source directory was not found.
	ExitNotFound = 4
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Err  error
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound
	}

	return ExitGeneralError
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitConfigError:
		return "Config Error"
	case ExitBuildError:
		return "Build Error"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}
