package run

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/pflag"
)

// BindFlags registers the run command's flags on fs, bound to the
// receiver's fields with the receiver's current values as defaults.
//
// Binding against an already-populated Config is what gives directive
// parsing its overlay semantics: any flag a directive omits keeps the
// value the base configuration carried.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Wfile, "wfile", c.Wfile,
		"File containing the definition of the workflow (default: .github/main.workflow or ./main.workflow)")
	fs.StringVar(&c.Workspace, "workspace", c.Workspace,
		"Path to the workspace folder")
	fs.Var(&c.Runtime, "runtime",
		"Runtime for executing the workflow (docker or singularity)")
	fs.BoolVar(&c.Parallel, "parallel", c.Parallel,
		"Execute independent stages of the workflow in parallel")
	fs.BoolVar(&c.DryRun, "dry-run", c.DryRun,
		"Do not run the workflow, only print what would be executed")
	fs.BoolVar(&c.Reuse, "reuse", c.Reuse,
		"Reuse containers between executions (persist container state)")
	fs.BoolVar(&c.SkipClone, "skip-clone", c.SkipClone,
		"Skip cloning action repositories (assume they have been cloned)")
	fs.BoolVar(&c.SkipPull, "skip-pull", c.SkipPull,
		"Skip pulling container images (assume they exist in the local cache)")
	fs.BoolVar(&c.WithDependencies, "with-dependencies", c.WithDependencies,
		"When an action argument is given, execute all its dependencies as well")
	fs.StringArrayVar(&c.Skip, "skip", c.Skip,
		"Skip the given action (can be given multiple times)")
	fs.StringVar(&c.OnFailure, "on-failure", c.OnFailure,
		"Run the given action if there is a failure")
	fs.BoolVar(&c.Debug, "debug", c.Debug,
		"Generate detailed messages of what popper does (overrides --quiet)")
	fs.BoolVar(&c.Quiet, "quiet", c.Quiet,
		"Do not print output generated by actions")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile,
		"Path to a log file (no log is created if this is not given)")
}

// ParseArgs parses an argument list into a copy of base using the exact
// flag grammar of the run command. A single positional argument selects
// the target action; more than one is an error. Flags present in args
// overlay the corresponding base fields, with --skip replacing the base
// skip list rather than appending to it.
//
// The same function serves the real command line and commit-message
// directives, which guarantees both parse identically.
func ParseArgs(base Config, args []string) (Config, error) {
	cfg := base
	cfg.Skip = slices.Clone(base.Skip)

	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
		// Keep the base action.
	case 1:
		cfg.Action = rest[0]
	default:
		return Config{}, fmt.Errorf("expected at most one action argument, got %d (%q)", len(rest), rest)
	}
	return cfg, nil
}
