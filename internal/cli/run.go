package cli

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/qwofford/popper/internal/ci"
	"github.com/qwofford/popper/internal/lifecycle"
	"github.com/qwofford/popper/internal/plan"
	"github.com/qwofford/popper/internal/run"
)

func newRunCommand(app *App) *cobra.Command {
	base := run.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "run [action]",
		Short: "Run a workflow or a single action",
		Long: `Run a workflow, or a single action from it when an action argument is
given.

The workflow file is taken from --wfile when given; otherwise
.github/main.workflow and then main.workflow are searched under the
workspace.

In a CI environment (CI=true), the head commit message is scanned for
popper:run[<args>] directives. Each directive is one execution, parsed
with the same flags as this command:

  popper:run[--wfile ci.workflow deploy]

When the head commit carries no directive at all, every workflow file
found under the workspace is executed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := base
			if len(args) == 1 {
				cfg.Action = args[0]
			}
			return runRun(cmd.Context(), app, cfg)
		},
	}

	base.BindFlags(cmd.Flags())
	return cmd
}

// runRun carries one invocation through the pipeline: resolve the
// configuration, build the plan, then sequence each planned run in order.
// The first unrecovered failure aborts the remaining plan and becomes the
// command's exit status.
func runRun(ctx context.Context, app *App, cfg run.Config) error {
	cfg, err := resolveConfig(app, cfg)
	if err != nil {
		app.Printer.Failure("%v", err)
		return NewExitError(1)
	}

	if app.Interrupt != nil {
		app.Interrupt.Record(cfg.Parallel)
	}

	scanner := ci.NewScanner(app.Repo, app.Printer, app.Logger)
	planner := plan.NewPlanner(scanner, app.Finder, app.Printer, app.Logger, app.CIMode)
	p, err := planner.Build(cfg)
	if err != nil {
		app.Printer.Failure("%v", err)
		return NewExitError(1)
	}

	if cfg.DryRun {
		rendered, err := yaml.Marshal(p)
		if err != nil {
			return err
		}
		app.Printer.Detail(strings.TrimRight(string(rendered), "\n"))
	}

	for i, planned := range p.Runs {
		if len(p.Runs) > 1 {
			app.Printer.RunHeader(i+1, len(p.Runs), planned.Config.Describe())
		}

		// Directives may override verbosity and the log file, so both
		// are re-applied for every planned run.
		app.Logger.SetLevel(planned.Config.Level())
		if planned.Config.LogFile != "" {
			if err := app.Logger.AttachFile(planned.Config.LogFile); err != nil {
				app.Printer.Failure("%v", err)
				return NewExitError(1)
			}
		}

		logger := app.Logger.With("run_id", uuid.NewString())
		seq := lifecycle.NewSequencer(app.Engine, app.Finder, app.Printer, logger)
		seq.SetPreWorkflow(app.Config.PreWorkflowPath)
		seq.SetPostWorkflow(app.Config.PostWorkflowPath)

		outcome, err := seq.Run(ctx, planned.Config)
		if err != nil {
			app.Printer.Failure("%v", err)
			return NewExitError(1)
		}
		if !outcome.Success() {
			app.Printer.Failure("Execution of %q failed with exit status %d.",
				outcome.Failed, outcome.ExitCode)
			return NewExitError(outcome.ExitCode)
		}
	}
	return nil
}

// resolveConfig finalizes the run configuration: the workspace defaults to
// the repository root, verbosity and the optional log file are applied to
// the invocation logger, and the flag combination is validated.
func resolveConfig(app *App, cfg run.Config) (run.Config, error) {
	if cfg.Workspace == "" {
		if root, err := app.Repo.Root(); err == nil {
			cfg.Workspace = root
		} else {
			wd, err := os.Getwd()
			if err != nil {
				return run.Config{}, err
			}
			cfg.Workspace = wd
		}
	}

	if err := cfg.Validate(); err != nil {
		return run.Config{}, err
	}

	app.Logger.SetLevel(cfg.Level())
	if cfg.LogFile != "" {
		if err := app.Logger.AttachFile(cfg.LogFile); err != nil {
			return run.Config{}, err
		}
	}
	return cfg, nil
}
