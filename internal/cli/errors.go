package cli

import (
	"errors"
	"fmt"
)

// ExitError carries the process exit status a command resolved to.
//
// Cobra RunE functions return an ExitError instead of calling os.Exit, so
// exit codes propagate to [RunWithApp] and stay assertable in tests;
// [Execute] is the only place that terminates the process. Validation and
// planner errors use code 1; engine failures pass their exit status
// through unchanged.
type ExitError struct {
	Code int
}

// Error returns "exit status N", matching the os/exec convention for
// subprocess failures.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError creates an [ExitError] with the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// IsExitError reports whether err carries an explicit exit code,
// unwrapping as needed, and returns that code.
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
