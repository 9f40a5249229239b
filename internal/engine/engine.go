// Package engine provides the client for popper's workflow execution
// engine.
//
// The engine is an external binary that parses a workflow file, builds the
// action dependency graph, and runs each action in a container. Popper
// only orchestrates: it renders one [Request] per execution and propagates
// the engine's exit status back as a [Result]. Engine output streams
// through to the terminal untouched.
//
// Key types:
//   - [Engine]: interface for executing one workflow run
//   - [ExecEngine]: implementation spawning the engine binary
//   - [Request]: parameters of one execution
//   - [Result]: exit status of one execution
//
// For testing, use [MockEngine] which implements [Engine] without spawning
// real processes.
package engine

import (
	"context"

	"github.com/qwofford/popper/internal/run"
)

// Request holds the parameters of one engine execution.
type Request struct {
	// WorkflowFile is the resolved path of the workflow to execute.
	WorkflowFile string

	// Action optionally restricts execution to one named action. Empty
	// runs the whole workflow.
	Action string

	// WithDependencies expands a single-action run to the action's
	// dependency closure.
	WithDependencies bool

	// Skip lists actions the engine must not execute.
	Skip []string

	// Runtime selects the container runtime.
	Runtime run.Runtime

	// Workspace is the folder the workflow executes against.
	Workspace string

	// Parallel lets the engine run independent stages concurrently.
	Parallel bool

	// Reuse keeps containers between executions.
	Reuse bool

	// SkipClone assumes action repositories are already cloned.
	SkipClone bool

	// SkipPull assumes container images exist in the local cache.
	SkipPull bool

	// Quiet suppresses action output inside the engine.
	Quiet bool
}

// Args renders the engine's command line for this request. The engine
// shares popper's flag vocabulary, so fields map one to one.
func (r Request) Args() []string {
	args := []string{
		"--wfile", r.WorkflowFile,
		"--workspace", r.Workspace,
		"--runtime", string(r.Runtime),
	}
	if r.Parallel {
		args = append(args, "--parallel")
	}
	if r.Reuse {
		args = append(args, "--reuse")
	}
	if r.SkipClone {
		args = append(args, "--skip-clone")
	}
	if r.SkipPull {
		args = append(args, "--skip-pull")
	}
	if r.WithDependencies {
		args = append(args, "--with-dependencies")
	}
	for _, s := range r.Skip {
		args = append(args, "--skip", s)
	}
	if r.Quiet {
		args = append(args, "--quiet")
	}
	if r.Action != "" {
		args = append(args, r.Action)
	}
	return args
}

// Result is the outcome of one engine execution.
type Result struct {
	// ExitCode is the engine's exit status. Zero means the execution
	// succeeded.
	ExitCode int
}

// Engine executes workflows.
type Engine interface {
	// Exec runs one workflow execution to completion. A non-zero engine
	// exit is reported in the [Result], not as an error; a returned error
	// means the engine could not be invoked at all.
	Exec(ctx context.Context, req Request) (Result, error)
}
