package run

import (
	"errors"
	"fmt"
)

// ValidationError reports an invalid argument combination or a failed
// resolution step. Validation errors are always fatal: they abort the
// invocation before any execution begins and map to a non-zero exit with
// a descriptive message.
type ValidationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError creates a [ValidationError] with a formatted reason.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError checks whether err is a [ValidationError], unwrapping
// as needed.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks the mutual-exclusivity rules of the configuration.
// It is called on the resolved command line and again on every parsed
// directive, so invalid combinations fail before any workflow executes.
func (c Config) Validate() error {
	if c.WithDependencies && c.Action == "" {
		return NewValidationError("--with-dependencies can be used only with an action argument")
	}
	if len(c.Skip) > 0 && c.Action != "" {
		return NewValidationError("--skip can't be used when an action argument is passed")
	}
	if c.Parallel && !c.Runtime.SupportsParallel() {
		return NewValidationError("--parallel is not supported by the %s runtime", c.Runtime)
	}
	return nil
}
