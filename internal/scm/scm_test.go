package scm

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gitCmd runs a git command in dir, failing the test on error.
func gitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, out)
}

// initGitRepo initializes a repository with one commit in a temporary
// directory and returns its path.
func initGitRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	gitCmd(t, dir, "init")
	gitCmd(t, dir, "config", "user.name", "Test User")
	gitCmd(t, dir, "config", "user.email", "test@example.com")
	gitCmd(t, dir, "commit", "--allow-empty", "-m", "Initial commit")
	return dir
}

func TestGitRepository_Head(t *testing.T) {
	dir := initGitRepo(t)

	repo := NewGitRepository(dir)
	head, err := repo.Head()

	require.NoError(t, err)
	assert.NotEmpty(t, head.SHA)
	assert.Equal(t, "Initial commit", head.Message)
	assert.Empty(t, head.Parents, "first commit should have no parents")
}

func TestGitRepository_Head_MultilineMessage(t *testing.T) {
	dir := initGitRepo(t)
	gitCmd(t, dir, "commit", "--allow-empty",
		"-m", "Add CI directives",
		"-m", "popper:run[build]\npopper:run[test]")

	repo := NewGitRepository(dir)
	head, err := repo.Head()

	require.NoError(t, err)
	assert.Contains(t, head.Message, "Add CI directives")
	assert.Contains(t, head.Message, "popper:run[build]")
	assert.Contains(t, head.Message, "popper:run[test]")
	assert.Len(t, head.Parents, 1)
}

func TestGitRepository_Head_MergeCommit(t *testing.T) {
	dir := initGitRepo(t)

	gitCmd(t, dir, "checkout", "-b", "feature")
	gitCmd(t, dir, "commit", "--allow-empty", "-m", "Feature work\n\npopper:run[test]")
	gitCmd(t, dir, "checkout", "-")
	gitCmd(t, dir, "merge", "--no-ff", "feature", "-m", "Merge branch 'feature'")

	repo := NewGitRepository(dir)
	head, err := repo.Head()

	require.NoError(t, err)
	assert.Contains(t, head.Message, "Merge branch 'feature'")
	require.Len(t, head.Parents, 2, "merge commit should have two parents")

	// The second parent is the merged-in branch.
	msg, err := repo.Message(head.Parents[1])
	require.NoError(t, err)
	assert.Contains(t, msg, "Feature work")
	assert.Contains(t, msg, "popper:run[test]")
}

func TestGitRepository_Head_EmptyRepo(t *testing.T) {
	dir := t.TempDir()
	gitCmd(t, dir, "init")

	repo := NewGitRepository(dir)
	_, err := repo.Head()

	assert.ErrorIs(t, err, ErrNoHead)
}

func TestGitRepository_Head_NotARepo(t *testing.T) {
	repo := NewGitRepository(t.TempDir())
	_, err := repo.Head()

	assert.ErrorIs(t, err, ErrNoHead)
}

func TestGitRepository_Root_FromSubdirectory(t *testing.T) {
	dir := initGitRepo(t)
	sub := filepath.Join(dir, "nested", "deep")
	require.NoError(t, os.MkdirAll(sub, 0755))

	repo := NewGitRepository(sub)
	root, err := repo.Root()
	require.NoError(t, err)

	resolvedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	resolvedDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolvedDir, resolvedRoot)
}

func TestGitRepository_Message_UnknownCommit(t *testing.T) {
	dir := initGitRepo(t)

	repo := NewGitRepository(dir)
	_, err := repo.Message("0000000000000000000000000000000000000000")

	assert.Error(t, err)
}

func TestMockRepository(t *testing.T) {
	mock := &MockRepository{
		HeadCommit: &Commit{
			SHA:     "abc123",
			Message: "Merge pull request #1",
			Parents: []string{"p1", "p2"},
		},
		Messages: map[string]string{
			"p2": "popper:run[build]",
		},
		RootDir: "/repo",
	}

	head, err := mock.Head()
	require.NoError(t, err)
	assert.Equal(t, "abc123", head.SHA)

	msg, err := mock.Message("p2")
	require.NoError(t, err)
	assert.Equal(t, "popper:run[build]", msg)

	_, err = mock.Message("p1")
	assert.Error(t, err)

	root, err := mock.Root()
	require.NoError(t, err)
	assert.Equal(t, "/repo", root)
}

func TestMockRepository_NoHead(t *testing.T) {
	mock := &MockRepository{}

	_, err := mock.Head()
	assert.ErrorIs(t, err, ErrNoHead)
}
