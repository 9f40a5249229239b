package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/qwofford/popper/internal/log"
)

// ExecEngine implements [Engine] by spawning the engine binary as a
// subprocess. Engine stdout and stderr stream through to the configured
// writers while the process runs.
type ExecEngine struct {
	binary string
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

// NewExecEngine creates an [ExecEngine] for the given binary, streaming
// engine output to the terminal.
func NewExecEngine(binary string, logger *log.Logger) *ExecEngine {
	return NewExecEngineWithOutput(binary, os.Stdout, os.Stderr, logger)
}

// NewExecEngineWithOutput creates an [ExecEngine] streaming engine output
// to the given writers.
func NewExecEngineWithOutput(binary string, stdout, stderr io.Writer, logger *log.Logger) *ExecEngine {
	return &ExecEngine{
		binary: binary,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}

// Exec implements [Engine].
func (e *ExecEngine) Exec(ctx context.Context, req Request) (Result, error) {
	args := req.Args()
	e.logger.ActionInfo("invoking engine",
		"binary", e.binary,
		"args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	cmd.Stdin = os.Stdin

	err := cmd.Run()
	if err == nil {
		return Result{ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		e.logger.Debug("engine exited non-zero", "code", exitErr.ExitCode())
		return Result{ExitCode: exitErr.ExitCode()}, nil
	}
	return Result{}, fmt.Errorf("running %s: %w", e.binary, err)
}
