package run

import "fmt"

// Runtime identifies the container runtime the execution engine should use.
//
// Runtime implements [pflag.Value], so binding it as a flag rejects
// unsupported values at parse time rather than at execution time.
type Runtime string

// Supported container runtimes.
const (
	RuntimeDocker      Runtime = "docker"
	RuntimeSingularity Runtime = "singularity"
)

// String returns the runtime name. Part of the pflag.Value interface.
func (r *Runtime) String() string {
	return string(*r)
}

// Set validates and assigns the runtime from a flag value. Part of the
// pflag.Value interface.
func (r *Runtime) Set(value string) error {
	switch Runtime(value) {
	case RuntimeDocker, RuntimeSingularity:
		*r = Runtime(value)
		return nil
	default:
		return fmt.Errorf("invalid runtime %q (must be %q or %q)",
			value, RuntimeDocker, RuntimeSingularity)
	}
}

// Type returns the flag value type name shown in help output. Part of the
// pflag.Value interface.
func (r *Runtime) Type() string {
	return "runtime"
}

// SupportsParallel reports whether the runtime can execute independent
// workflow stages concurrently. Singularity builds share a local image
// cache and must run serially.
func (r Runtime) SupportsParallel() bool {
	return r == RuntimeDocker
}
