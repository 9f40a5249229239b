// Package plan expands one command invocation into the ordered sequence
// of workflow executions to perform.
//
// Outside CI, the plan is trivial: the command line describes exactly one
// run. In CI, the head commit message decides the shape of the plan:
//
//   - Directives found: one run per directive, in order of appearance.
//     Each payload is re-parsed with the run command's own grammar and
//     overlays the base configuration from the command line.
//   - No directive marker anywhere: one run per workflow file discovered
//     under the workspace, in deterministic order.
//
// A directive that fails to parse or validate aborts the whole invocation;
// silently executing a partial plan would hide the author's intent.
//
// Key types:
//   - [Planner]: builds the plan for one invocation
//   - [Plan]: ordered, immutable sequence of runs
//   - [Run]: one planned execution with its provenance
package plan

import (
	"fmt"
	"slices"
	"strings"

	"github.com/qwofford/popper/internal/ci"
	"github.com/qwofford/popper/internal/log"
	"github.com/qwofford/popper/internal/output"
	"github.com/qwofford/popper/internal/run"
)

// Run is one planned execution.
type Run struct {
	// Source records where this run came from: the command line, a commit
	// message directive, or a discovered workflow file.
	Source string `yaml:"source"`

	// Config is the full configuration for the execution.
	Config run.Config `yaml:"config"`
}

// Plan is the ordered sequence of executions for one command invocation.
// A plan is built once and never modified afterwards.
type Plan struct {
	Runs []Run `yaml:"runs"`
}

// Scanner yields directive payloads from the head commit.
type Scanner interface {
	Scan() (*ci.ScanResult, error)
}

// Discoverer enumerates workflow files for recursive runs.
type Discoverer interface {
	Discover(root string) ([]string, error)
}

// Planner builds the [Plan] for one invocation.
type Planner struct {
	scanner    Scanner
	discoverer Discoverer
	printer    *output.Printer
	logger     *log.Logger
	ciMode     bool
}

// NewPlanner creates a [Planner]. With ciMode false the scanner and
// discoverer are never consulted.
func NewPlanner(scanner Scanner, discoverer Discoverer, printer *output.Printer, logger *log.Logger, ciMode bool) *Planner {
	return &Planner{
		scanner:    scanner,
		discoverer: discoverer,
		printer:    printer,
		logger:     logger,
		ciMode:     ciMode,
	}
}

// Build expands the base configuration into the full plan.
func (p *Planner) Build(base run.Config) (*Plan, error) {
	if !p.ciMode {
		return &Plan{Runs: []Run{{Source: "command line", Config: base}}}, nil
	}

	p.printer.Info("Running in CI environment...")

	result, err := p.scanner.Scan()
	if err != nil {
		return nil, err
	}

	if !result.MarkerFound {
		return p.recursive(base)
	}
	if len(result.Directives) == 0 {
		return nil, run.NewValidationError(
			"commit message contains the %s...] marker but no parsable directive", ci.Marker)
	}
	return p.fromDirectives(base, result.Directives)
}

// fromDirectives builds one run per directive payload, in order of
// appearance. Every payload must parse and validate; a bad directive
// aborts the invocation.
func (p *Planner) fromDirectives(base run.Config, directives []string) (*Plan, error) {
	runs := make([]Run, 0, len(directives))
	for _, payload := range directives {
		cfg, err := run.ParseArgs(base, strings.Fields(payload))
		if err != nil {
			return nil, run.NewValidationError("invalid directive popper:run[%s]: %v", payload, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("directive popper:run[%s]: %w", payload, err)
		}
		runs = append(runs, Run{
			Source: fmt.Sprintf("directive popper:run[%s]", payload),
			Config: cfg,
		})
	}

	p.logger.Debug("planned runs from directives", "count", len(runs))
	return &Plan{Runs: runs}, nil
}

// recursive builds one run per workflow file under the workspace, each
// identical to the base configuration except for the workflow file.
func (p *Planner) recursive(base run.Config) (*Plan, error) {
	files, err := p.discoverer.Discover(base.Workspace)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, run.NewValidationError("no workflow files found under %s", base.Workspace)
	}

	runs := make([]Run, 0, len(files))
	for _, wfile := range files {
		cfg := base
		cfg.Skip = slices.Clone(base.Skip)
		cfg.Wfile = wfile
		runs = append(runs, Run{
			Source: fmt.Sprintf("discovered %s", wfile),
			Config: cfg,
		})
	}

	p.logger.Debug("planned recursive runs", "count", len(runs))
	return &Plan{Runs: runs}, nil
}
