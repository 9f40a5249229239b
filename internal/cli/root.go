// Package cli implements popper's command-line interface.
//
// The root command wires the application's collaborators into an [App]
// and exposes the run subcommand. Commands signal failures with
// [ExitError] instead of calling os.Exit directly, so exit codes stay
// testable; [Execute] is the single place that terminates the process.
//
// Key types:
//   - [App]: dependency container shared by all commands
//   - [ExitError]: error carrying a specific process exit code
//   - [ExecuteResult]: outcome of one command execution
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qwofford/popper/internal/ci"
	"github.com/qwofford/popper/internal/config"
	"github.com/qwofford/popper/internal/engine"
	"github.com/qwofford/popper/internal/log"
	"github.com/qwofford/popper/internal/output"
	"github.com/qwofford/popper/internal/scm"
	"github.com/qwofford/popper/internal/signals"
	"github.com/qwofford/popper/internal/workflow"
)

// App holds the collaborators the commands operate on.
//
// Production wiring happens in [Execute]; tests construct an App with
// mocks and drive [NewRootCommand] directly.
type App struct {
	// Config is the application configuration (engine binary, pre- and
	// post-workflow paths).
	Config *config.Config

	// Repo reads the source-control repository containing the workspace.
	Repo scm.Repository

	// Finder resolves and discovers workflow files.
	Finder workflow.Finder

	// Engine executes workflows.
	Engine engine.Engine

	// Printer renders orchestration messages.
	Printer *output.Printer

	// Logger is the invocation-wide structured logger.
	Logger *log.Logger

	// Interrupt is the record consulted by the interrupt handler.
	Interrupt *signals.State

	// CIMode reports whether popper runs in a continuous-integration
	// environment.
	CIMode bool
}

// NewRootCommand creates the popper root command with all subcommands
// registered.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "popper",
		Short: "Workflow runner for reproducible experimentation pipelines",
		Long: `Popper orchestrates the execution of container-native workflows.
It decides how many workflow executions to perform and with what
parameters, then delegates each execution to the workflow engine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCommand(app))
	return root
}

// ExecuteResult carries the outcome of one command execution.
type ExecuteResult struct {
	// ExitCode is the process exit status the command resolved to.
	ExitCode int

	// Err is the error the command returned, if any.
	Err error
}

// RunWithApp executes the root command against app with the given
// arguments and converts the returned error into an [ExecuteResult].
func RunWithApp(app *App, args []string) ExecuteResult {
	cmd := NewRootCommand(app)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		if code, ok := IsExitError(err); ok {
			return ExecuteResult{ExitCode: code, Err: err}
		}
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	return ExecuteResult{ExitCode: 0}
}

// Execute wires the production application, runs the command line, and
// exits the process with the resulting status. Called from main.
func Execute() {
	logger := log.New(log.LevelActionInfo, os.Stderr)

	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := &App{
		Config:    cfg,
		Repo:      scm.NewGitRepository("."),
		Finder:    workflow.NewFSFinder(),
		Engine:    engine.NewExecEngine(cfg.Engine.BinaryPath, logger),
		Printer:   output.NewPrinter(),
		Logger:    logger,
		Interrupt: &signals.State{},
		CIMode:    ci.Enabled(),
	}
	signals.Install(app.Interrupt, logger)

	result := RunWithApp(app, os.Args[1:])
	if result.Err != nil {
		if _, ok := IsExitError(result.Err); !ok {
			fmt.Fprintf(os.Stderr, "Error: %v\n", result.Err)
		}
	}
	logger.Close()
	os.Exit(result.ExitCode)
}
