package run

// Outcome is the result of one sequenced execution. Failures are ordinary
// values, not errors: the sequencer inspects the outcome to decide whether
// an on-failure fallback applies, and the command layer converts the final
// outcome into the process exit status.
type Outcome struct {
	// ExitCode is the exit status of the last engine execution. Zero
	// means success.
	ExitCode int

	// Failed names the action or workflow file whose execution produced a
	// non-zero ExitCode. Empty on success.
	Failed string
}

// Success reports whether the execution completed with a zero exit status.
func (o Outcome) Success() bool {
	return o.ExitCode == 0
}
