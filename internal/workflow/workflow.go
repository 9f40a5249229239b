// Package workflow locates workflow files for popper.
//
// Popper delegates workflow parsing and execution to the engine; this
// package only answers where workflow files live. [Finder.Resolve] picks
// the effective file for one run, preferring an explicit --wfile path and
// falling back to the default locations under the workspace.
// [Finder.Discover] enumerates every workflow under a root for recursive
// CI runs, in a deterministic order.
//
// Key types:
//   - [Finder]: interface for resolution and discovery
//   - [FSFinder]: filesystem-backed implementation
//
// For testing, use [MockFinder] which implements [Finder] without touching
// the filesystem.
package workflow

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Ext is the file extension of workflow files.
const Ext = ".workflow"

// DefaultPaths are the locations searched for a workflow file, relative to
// the workspace, in order of preference.
var DefaultPaths = []string{
	filepath.Join(".github", "main.workflow"),
	"main.workflow",
}

// ErrNotFound indicates no workflow file exists at the explicit path or in
// any default location.
var ErrNotFound = errors.New("workflow file not found")

// Finder locates workflow files.
type Finder interface {
	// Resolve returns the workflow file to execute. When explicit is
	// non-empty it is used as given and must exist; otherwise the default
	// locations under workspace are tried in order. Returns an error
	// wrapping [ErrNotFound] when nothing is found.
	Resolve(explicit, workspace string) (string, error)

	// Discover returns every workflow file under root, in a deterministic
	// order that is stable across runs on the same tree.
	Discover(root string) ([]string, error)
}

// FSFinder implements [Finder] against the real filesystem.
type FSFinder struct{}

// NewFSFinder creates an [FSFinder].
func NewFSFinder() *FSFinder {
	return &FSFinder{}
}

// Resolve implements [Finder].
func (f *FSFinder) Resolve(explicit, workspace string) (string, error) {
	if explicit != "" {
		if !isFile(explicit) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, explicit)
		}
		return explicit, nil
	}

	for _, rel := range DefaultPaths {
		candidate := filepath.Join(workspace, rel)
		if isFile(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s under %s",
		ErrNotFound, strings.Join(DefaultPaths, ", "), workspace)
}

// Discover implements [Finder]. Results are sorted lexically so recursive
// runs execute workflows in the same order every time.
func (f *FSFinder) Discover(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Workflow files never live under source-control metadata.
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == Ext {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering workflows under %s: %w", root, err)
	}

	sort.Strings(found)
	return found, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
