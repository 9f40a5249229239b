// Package run defines the canonical run configuration and the shared
// argument grammar that produces it.
//
// A [Config] captures every parameter of one workflow execution: the
// optional target action, the workflow file, the workspace, the container
// runtime, and the assorted behavior flags of the run command. Commit
// message directives and the real command line are parsed by the same
// function, [ParseArgs], so a directive such as
//
//	popper:run[--wfile ci.workflow deploy]
//
// resolves exactly as if its payload had been typed after "popper run".
//
// Key types:
//   - [Config]: validated parameters for one workflow or action execution
//   - [Runtime]: container runtime selection with a concurrency capability check
//   - [Outcome]: result of one sequenced execution
//   - [ValidationError]: fatal argument-combination or resolution error
package run

import (
	"fmt"

	"github.com/qwofford/popper/internal/log"
)

// Config holds the canonical, validated parameters for one workflow or
// action execution.
//
// A Config is built once per planned run and never mutated afterwards.
// Directive parsing copies a base Config and overlays only the fields the
// directive names, so zero values here always mean "inherited from the
// invocation", never "unset by accident".
type Config struct {
	// Action optionally restricts the run to a single named action from the
	// workflow. Empty means the whole workflow runs.
	Action string `yaml:"action,omitempty"`

	// Wfile is an explicit workflow file path. Empty means the default
	// locations under the workspace are searched.
	Wfile string `yaml:"wfile,omitempty"`

	// Workspace is the folder the workflow executes against. Defaults to
	// the repository root of the current directory.
	Workspace string `yaml:"workspace"`

	// Runtime selects the container runtime used by the execution engine.
	Runtime Runtime `yaml:"runtime"`

	// Parallel asks the engine to execute independent stages concurrently.
	Parallel bool `yaml:"parallel,omitempty"`

	// DryRun enumerates and prints the plan without invoking the engine.
	DryRun bool `yaml:"dry_run,omitempty"`

	// Reuse keeps containers between executions instead of recreating them.
	Reuse bool `yaml:"reuse,omitempty"`

	// SkipClone assumes action repositories are already cloned.
	SkipClone bool `yaml:"skip_clone,omitempty"`

	// SkipPull assumes container images already exist in the local cache.
	SkipPull bool `yaml:"skip_pull,omitempty"`

	// WithDependencies expands a single-action run to include the action's
	// dependency closure. Requires Action to be set.
	WithDependencies bool `yaml:"with_dependencies,omitempty"`

	// Skip lists actions to exclude from a whole-workflow run. Mutually
	// exclusive with Action.
	Skip []string `yaml:"skip,omitempty"`

	// OnFailure names an action to run when the main execution fails.
	OnFailure string `yaml:"on_failure,omitempty"`

	// Debug enables the most verbose logging, overriding Quiet.
	Debug bool `yaml:"debug,omitempty"`

	// Quiet suppresses output generated by actions.
	Quiet bool `yaml:"quiet,omitempty"`

	// LogFile, when set, mirrors log output to this file for the whole
	// invocation.
	LogFile string `yaml:"log_file,omitempty"`
}

// DefaultConfig returns a Config with the documented flag defaults. The
// workspace is left empty; the command layer fills it with the repository
// root before binding flags.
func DefaultConfig() Config {
	return Config{
		Runtime: RuntimeDocker,
	}
}

// Level resolves the effective verbosity for this configuration. Debug
// wins over Quiet; with neither set, action-level output is included.
func (c Config) Level() log.Level {
	switch {
	case c.Debug:
		return log.LevelDebug
	case c.Quiet:
		return log.LevelInfo
	default:
		return log.LevelActionInfo
	}
}

// Describe returns a short human-readable summary of what this
// configuration runs, used in run headers and dry-run previews.
func (c Config) Describe() string {
	switch {
	case c.Action != "":
		return fmt.Sprintf("action %q", c.Action)
	case c.Wfile != "":
		return fmt.Sprintf("workflow %s", c.Wfile)
	default:
		return "default workflow"
	}
}
