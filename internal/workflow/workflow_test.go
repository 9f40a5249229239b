package workflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file (and any parent directories) under dir.
func writeFile(t *testing.T, dir string, rel string) string {
	t.Helper()

	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("workflow \"test\" {}\n"), 0644))
	return path
}

func TestFSFinder_Resolve_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ci.workflow")

	finder := NewFSFinder()
	resolved, err := finder.Resolve(path, dir)

	require.NoError(t, err)
	assert.Equal(t, path, resolved)
}

func TestFSFinder_Resolve_ExplicitPathMissing(t *testing.T) {
	finder := NewFSFinder()
	_, err := finder.Resolve("/nonexistent/ci.workflow", t.TempDir())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFSFinder_Resolve_ExplicitPathIsDirectory(t *testing.T) {
	dir := t.TempDir()

	finder := NewFSFinder()
	_, err := finder.Resolve(dir, dir)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFSFinder_Resolve_PrefersGithubLocation(t *testing.T) {
	dir := t.TempDir()
	github := writeFile(t, dir, filepath.Join(".github", "main.workflow"))
	writeFile(t, dir, "main.workflow")

	finder := NewFSFinder()
	resolved, err := finder.Resolve("", dir)

	require.NoError(t, err)
	assert.Equal(t, github, resolved)
}

func TestFSFinder_Resolve_FallsBackToRootLocation(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "main.workflow")

	finder := NewFSFinder()
	resolved, err := finder.Resolve("", dir)

	require.NoError(t, err)
	assert.Equal(t, root, resolved)
}

func TestFSFinder_Resolve_NothingFound(t *testing.T) {
	finder := NewFSFinder()
	_, err := finder.Resolve("", t.TempDir())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFSFinder_Discover(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, filepath.Join("a", "main.workflow"))
	b := writeFile(t, dir, filepath.Join("b", "nested", "ci.workflow"))
	top := writeFile(t, dir, "main.workflow")
	writeFile(t, dir, "README.md")
	writeFile(t, dir, filepath.Join(".git", "refs.workflow"))

	finder := NewFSFinder()
	found, err := finder.Discover(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{a, b, top}, found,
		"results should be sorted and exclude anything under .git")
}

func TestFSFinder_Discover_Deterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("z", "last.workflow"))
	writeFile(t, dir, filepath.Join("a", "first.workflow"))
	writeFile(t, dir, "middle.workflow")

	finder := NewFSFinder()
	first, err := finder.Discover(dir)
	require.NoError(t, err)
	second, err := finder.Discover(dir)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFSFinder_Discover_EmptyTree(t *testing.T) {
	finder := NewFSFinder()
	found, err := finder.Discover(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFSFinder_Discover_MissingRoot(t *testing.T) {
	finder := NewFSFinder()
	_, err := finder.Discover("/nonexistent/workspace")

	assert.Error(t, err)
}

func TestMockFinder_EchoesExplicitPath(t *testing.T) {
	mock := &MockFinder{}

	resolved, err := mock.Resolve("ci.workflow", "/ws")
	require.NoError(t, err)
	assert.Equal(t, "ci.workflow", resolved)
	assert.Equal(t, [][2]string{{"ci.workflow", "/ws"}}, mock.ResolveCalls)
}

func TestMockFinder_DefaultResolution(t *testing.T) {
	mock := &MockFinder{ResolvedPath: "/ws/main.workflow"}

	resolved, err := mock.Resolve("", "/ws")
	require.NoError(t, err)
	assert.Equal(t, "/ws/main.workflow", resolved)
}

func TestMockFinder_NothingConfigured(t *testing.T) {
	mock := &MockFinder{}

	_, err := mock.Resolve("", "/ws")
	assert.ErrorIs(t, err, ErrNotFound)
}
