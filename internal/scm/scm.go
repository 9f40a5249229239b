// Package scm provides source-control introspection for popper.
//
// The orchestrator needs two things from the repository containing the
// workspace: the head commit (message and parents, for directive scanning)
// and the repository root (the default workspace). Both are read by
// shelling out to the git binary.
//
// Key types:
//   - [Repository]: interface over commit history and repository layout
//   - [GitRepository]: implementation backed by the git binary
//   - [Commit]: one commit with its message and parent hashes
//
// For testing, use [MockRepository] which implements [Repository] without
// a real checkout.
package scm

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoHead indicates the repository has no head commit to inspect, either
// because it has no commits yet or because the directory is not inside a
// repository at all.
var ErrNoHead = errors.New("no head commit")

// Commit is one commit in the repository history.
type Commit struct {
	// SHA is the full commit hash.
	SHA string

	// Message is the complete commit message, subject and body.
	Message string

	// Parents holds the SHAs of the commit's parents in order. A merge
	// commit has two: the branch merged into first, the merged-in branch
	// second.
	Parents []string
}

// Repository reads commit history and layout of a source-control checkout.
type Repository interface {
	// Head returns the current head commit. Returns an error wrapping
	// [ErrNoHead] when there is none.
	Head() (*Commit, error)

	// Message returns the full commit message of the commit named by sha.
	Message(sha string) (string, error)

	// Root returns the absolute path of the repository's top-level folder.
	Root() (string, error)
}

// GitRepository implements [Repository] by shelling out to git.
type GitRepository struct {
	dir string
}

// NewGitRepository creates a [GitRepository] operating on the repository
// that contains dir.
func NewGitRepository(dir string) *GitRepository {
	return &GitRepository{dir: dir}
}

// headFormat prints the hash, the parent hashes, and the raw message
// separated by NUL bytes, so multi-line messages survive parsing.
const headFormat = "%H%x00%P%x00%B"

// Head implements [Repository].
func (g *GitRepository) Head() (*Commit, error) {
	out, err := g.git("log", "-1", "--format="+headFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoHead, err)
	}

	parts := strings.SplitN(out, "\x00", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: unexpected git log output %q", ErrNoHead, out)
	}

	commit := &Commit{
		SHA:     parts[0],
		Message: strings.TrimRight(parts[2], "\n"),
	}
	if parents := strings.Fields(parts[1]); len(parents) > 0 {
		commit.Parents = parents
	}
	return commit, nil
}

// Message implements [Repository].
func (g *GitRepository) Message(sha string) (string, error) {
	out, err := g.git("log", "-1", "--format=%B", sha)
	if err != nil {
		return "", fmt.Errorf("reading message of %s: %w", sha, err)
	}
	return strings.TrimRight(out, "\n"), nil
}

// Root implements [Repository].
func (g *GitRepository) Root() (string, error) {
	out, err := g.git("rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("locating repository root: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (g *GitRepository) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.dir
	out, err := cmd.Output()
	if err != nil {
		return "", gitError(err)
	}
	return string(out), nil
}

// gitError surfaces git's stderr instead of the bare "exit status 128".
func gitError(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return fmt.Errorf("git: %s", strings.TrimSpace(string(exitErr.Stderr)))
	}
	return err
}
