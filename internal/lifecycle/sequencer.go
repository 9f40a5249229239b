// Package lifecycle sequences the stages of one workflow execution.
//
// The [Sequencer] takes one run configuration through its full lifecycle:
// resolve the workflow file, execute an optional pre-workflow, the main
// workflow, and an optional post-workflow, then intercept failure and run
// the configured on-failure action in its place. Execution failures are
// ordinary [run.Outcome] values consumed by the caller; only problems that
// prevent a run from being attempted at all (an unresolvable workflow
// file, an engine that cannot be spawned) surface as errors.
//
// Key behaviors:
//   - Pre, main, and post failures are all eligible for the on-failure
//     fallback; the fallback's outcome replaces the original failure
//   - The fallback targets only the on-failure action, with the skip list
//     and dependency expansion cleared
//   - Dry runs print every engine invocation without executing any
//
// The Sequencer holds no state across runs; each Run call is independent.
package lifecycle

import (
	"context"
	"strings"

	"github.com/qwofford/popper/internal/engine"
	"github.com/qwofford/popper/internal/log"
	"github.com/qwofford/popper/internal/output"
	"github.com/qwofford/popper/internal/run"
)

// Engine executes one workflow run to completion.
//
// The [engine.ExecEngine] type implements this interface.
type Engine interface {
	Exec(ctx context.Context, req engine.Request) (engine.Result, error)
}

// Resolver locates the workflow file for a run.
//
// The [workflow.FSFinder] type implements this interface.
type Resolver interface {
	Resolve(explicit, workspace string) (string, error)
}

// Sequencer executes one run configuration through its stage sequence.
//
// Use [NewSequencer] to create an instance; pre- and post-workflows are
// optional and configured via [Sequencer.SetPreWorkflow] and
// [Sequencer.SetPostWorkflow].
type Sequencer struct {
	engine   Engine
	resolver Resolver
	printer  *output.Printer
	logger   *log.Logger

	preWorkflow  string
	postWorkflow string
}

// NewSequencer creates a new Sequencer with the required dependencies.
func NewSequencer(eng Engine, resolver Resolver, printer *output.Printer, logger *log.Logger) *Sequencer {
	return &Sequencer{
		engine:   eng,
		resolver: resolver,
		printer:  printer,
		logger:   logger,
	}
}

// SetPreWorkflow configures a workflow executed in full before the main
// workflow of every run. A failure in the pre-workflow aborts the run
// before the main stage. Empty disables the stage.
func (s *Sequencer) SetPreWorkflow(path string) {
	s.preWorkflow = path
}

// SetPostWorkflow configures a workflow executed in full after the main
// workflow succeeds. Empty disables the stage.
func (s *Sequencer) SetPostWorkflow(path string) {
	s.postWorkflow = path
}

// Run takes one configuration through the full stage sequence and returns
// its outcome.
//
// When any stage fails and an on-failure action is configured, that action
// runs on the resolved main workflow and its outcome replaces the
// original failure. A returned error means the run could not be attempted
// or the engine could not be invoked; execution failures are reported in
// the outcome instead.
func (s *Sequencer) Run(ctx context.Context, cfg run.Config) (run.Outcome, error) {
	wfile, err := s.resolver.Resolve(cfg.Wfile, cfg.Workspace)
	if err != nil {
		return run.Outcome{}, run.NewValidationError("%v", err)
	}

	s.printer.Info("Found and running workflow at %s", wfile)

	if cfg.Parallel {
		s.printer.Warning("Using --parallel may result in interleaved output. " +
			"You may use --quiet flag to avoid confusion.")
	}

	var outcome run.Outcome
	if cfg.DryRun {
		outcome = s.dryRun(cfg, wfile)
	} else {
		outcome, err = s.sequence(ctx, cfg, wfile)
		if err != nil {
			return run.Outcome{}, err
		}
	}

	finalAction := cfg.Action
	if !outcome.Success() && cfg.OnFailure != "" {
		outcome, err = s.fallback(ctx, cfg, wfile)
		if err != nil {
			return run.Outcome{}, err
		}
		finalAction = cfg.OnFailure
	}

	if outcome.Success() {
		if finalAction != "" {
			s.printer.Success("Action %q finished successfully.", finalAction)
		} else {
			s.printer.Success("Workflow %q finished successfully.", wfile)
		}
	}
	return outcome, nil
}

// sequence executes the pre, main, and post stages in order, stopping at
// the first failure.
func (s *Sequencer) sequence(ctx context.Context, cfg run.Config, wfile string) (run.Outcome, error) {
	if s.preWorkflow != "" {
		s.logger.ActionInfo("running pre-workflow", "wfile", s.preWorkflow)
		result, err := s.engine.Exec(ctx, fullRequest(cfg, s.preWorkflow))
		if err != nil {
			return run.Outcome{}, err
		}
		if result.ExitCode != 0 {
			return run.Outcome{ExitCode: result.ExitCode, Failed: s.preWorkflow}, nil
		}
	}

	result, err := s.engine.Exec(ctx, mainRequest(cfg, wfile))
	if err != nil {
		return run.Outcome{}, err
	}
	if result.ExitCode != 0 {
		return run.Outcome{ExitCode: result.ExitCode, Failed: mainName(cfg, wfile)}, nil
	}

	if s.postWorkflow != "" {
		s.logger.ActionInfo("running post-workflow", "wfile", s.postWorkflow)
		result, err := s.engine.Exec(ctx, fullRequest(cfg, s.postWorkflow))
		if err != nil {
			return run.Outcome{}, err
		}
		if result.ExitCode != 0 {
			return run.Outcome{ExitCode: result.ExitCode, Failed: s.postWorkflow}, nil
		}
	}

	return run.Outcome{}, nil
}

// fallback executes the on-failure action on the resolved main workflow.
func (s *Sequencer) fallback(ctx context.Context, cfg run.Config, wfile string) (run.Outcome, error) {
	s.logger.ActionInfo("running on-failure action", "action", cfg.OnFailure)

	result, err := s.engine.Exec(ctx, fallbackRequest(cfg, wfile))
	if err != nil {
		return run.Outcome{}, err
	}
	if result.ExitCode != 0 {
		return run.Outcome{ExitCode: result.ExitCode, Failed: cfg.OnFailure}, nil
	}
	return run.Outcome{}, nil
}

// dryRun prints each stage's engine invocation without executing anything.
// A dry run always succeeds, so no fallback applies.
func (s *Sequencer) dryRun(cfg run.Config, wfile string) run.Outcome {
	if s.preWorkflow != "" {
		s.printer.DryRun("would execute: %s", strings.Join(fullRequest(cfg, s.preWorkflow).Args(), " "))
	}
	s.printer.DryRun("would execute: %s", strings.Join(mainRequest(cfg, wfile).Args(), " "))
	if s.postWorkflow != "" {
		s.printer.DryRun("would execute: %s", strings.Join(fullRequest(cfg, s.postWorkflow).Args(), " "))
	}
	return run.Outcome{}
}

// fullRequest renders a request that runs path in full, keeping only the
// behavior flags of cfg. Pre- and post-workflows always run whole,
// regardless of any target action or skip list on the main run.
func fullRequest(cfg run.Config, path string) engine.Request {
	return engine.Request{
		WorkflowFile: path,
		Runtime:      cfg.Runtime,
		Workspace:    cfg.Workspace,
		Parallel:     cfg.Parallel,
		Reuse:        cfg.Reuse,
		SkipClone:    cfg.SkipClone,
		SkipPull:     cfg.SkipPull,
		Quiet:        cfg.Quiet,
	}
}

// mainRequest renders the main-stage request for the resolved workflow.
func mainRequest(cfg run.Config, wfile string) engine.Request {
	req := fullRequest(cfg, wfile)
	req.Action = cfg.Action
	req.WithDependencies = cfg.WithDependencies
	req.Skip = cfg.Skip
	return req
}

// fallbackRequest renders the on-failure request: the fallback action on
// the main workflow, with the skip list and dependency expansion cleared.
func fallbackRequest(cfg run.Config, wfile string) engine.Request {
	req := fullRequest(cfg, wfile)
	req.Action = cfg.OnFailure
	return req
}

// mainName labels a failed main-stage execution for the outcome.
func mainName(cfg run.Config, wfile string) string {
	if cfg.Action != "" {
		return cfg.Action
	}
	return wfile
}
