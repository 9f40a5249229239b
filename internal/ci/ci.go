// Package ci detects continuous-integration runs and extracts popper run
// directives from commit messages.
//
// CI setups drive popper by embedding directives in commit messages:
//
//	popper:run[--wfile ci.workflow deploy]
//
// The [Scanner] reads the head commit of the workspace repository and
// extracts every directive payload in order of appearance. On merge
// commits, the message of the merged-in branch is scanned instead, which
// recovers the original author's intent after a pull request merge.
//
// [Enabled] reports CI mode itself, signaled by the CI environment
// variable that most providers set.
package ci

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/qwofford/popper/internal/log"
	"github.com/qwofford/popper/internal/output"
	"github.com/qwofford/popper/internal/scm"
)

// Marker is the token that opens a run directive in a commit message.
const Marker = "popper:run["

// mergeMarker identifies merge commits by their conventional subject line.
const mergeMarker = "Merge"

// directivePattern captures the bracketed payload of one directive.
// Payloads cannot span lines.
var directivePattern = regexp.MustCompile(`popper:run\[(.+?)\]`)

// Enabled reports whether popper is running in a continuous-integration
// environment.
func Enabled() bool {
	return os.Getenv("CI") == "true"
}

// ScanResult is the outcome of scanning a commit message for directives.
//
// MarkerFound distinguishes "the marker never appeared" from "the marker
// appeared but yielded no payloads". The planner falls back to recursive
// workflow discovery only in the first case.
type ScanResult struct {
	// Directives holds the raw argument payloads in order of appearance.
	Directives []string

	// MarkerFound reports whether the directive marker appeared in the
	// scanned message at all.
	MarkerFound bool
}

// Scanner extracts run directives from the head commit of a repository.
type Scanner struct {
	repo    scm.Repository
	printer *output.Printer
	logger  *log.Logger
}

// NewScanner creates a [Scanner] reading from repo.
func NewScanner(repo scm.Repository, printer *output.Printer, logger *log.Logger) *Scanner {
	return &Scanner{
		repo:    repo,
		printer: printer,
		logger:  logger,
	}
}

// Scan reads the head commit message and extracts directive payloads.
//
// A repository without a head commit produces an empty result rather than
// an error. Merge commits with exactly two parents are scanned through
// their second parent, the merged-in branch.
func (s *Scanner) Scan() (*ScanResult, error) {
	head, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, scm.ErrNoHead) {
			s.logger.Debug("no head commit to scan")
			return &ScanResult{}, nil
		}
		return nil, err
	}

	msg := head.Message
	if strings.Contains(msg, mergeMarker) {
		s.printer.Info("Merge detected. Reading message from merged commit.")
		if len(head.Parents) == 2 {
			merged, err := s.repo.Message(head.Parents[1])
			if err != nil {
				return nil, fmt.Errorf("reading merged commit message: %w", err)
			}
			msg = merged
		}
	}

	if !strings.Contains(msg, Marker) {
		s.logger.Debug("no directive marker in head commit", "sha", head.SHA)
		return &ScanResult{}, nil
	}

	matches := directivePattern.FindAllStringSubmatch(msg, -1)
	directives := make([]string, 0, len(matches))
	for _, m := range matches {
		directives = append(directives, m[1])
	}

	s.logger.Debug("scanned head commit",
		"sha", head.SHA,
		"directives", len(directives))

	return &ScanResult{Directives: directives, MarkerFound: true}, nil
}
