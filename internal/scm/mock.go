package scm

import (
	"errors"
	"fmt"
)

// MockRepository implements [Repository] without a real checkout.
type MockRepository struct {
	// HeadCommit is returned by Head. Nil means the repository has no head.
	HeadCommit *Commit

	// HeadErr, when set, is returned by Head instead of HeadCommit.
	HeadErr error

	// Messages maps commit SHAs to messages for Message lookups.
	Messages map[string]string

	// RootDir is returned by Root.
	RootDir string
}

func (m *MockRepository) Head() (*Commit, error) {
	if m.HeadErr != nil {
		return nil, m.HeadErr
	}
	if m.HeadCommit == nil {
		return nil, ErrNoHead
	}
	return m.HeadCommit, nil
}

func (m *MockRepository) Message(sha string) (string, error) {
	msg, ok := m.Messages[sha]
	if !ok {
		return "", fmt.Errorf("unknown commit %s", sha)
	}
	return msg, nil
}

func (m *MockRepository) Root() (string, error) {
	if m.RootDir == "" {
		return "", errors.New("no repository root")
	}
	return m.RootDir, nil
}
