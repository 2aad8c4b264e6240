package sandbox

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func realPath(t *testing.T, p string) string {
	t.Helper()
	r, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	return r
}

func TestResolveWithinRoot(t *testing.T) {
	root := t.TempDir()

	got, err := Resolve(root, "src/pkg/main.go")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(realPath(t, root), "src", "pkg", "main.go"), got)

	got, err = Resolve(root, ".")
	require.NoError(t, err)
	assert.Equal(t, realPath(t, root), got)
}

func TestResolveRejectsEscapes(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"../escape.txt", "a/../../escape.txt"} {
		_, err := Resolve(root, rel)
		var esc *EscapeError
		assert.True(t, errors.As(err, &esc), "%s: got %v", rel, err)
	}
}

func TestResolveRejectsSymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks not reliable on Windows")
	}
	root := t.TempDir()
	require.NoError(t, os.Symlink(t.TempDir(), filepath.Join(root, "link")))

	_, err := Resolve(root, "link/file.txt")
	var esc *EscapeError
	assert.True(t, errors.As(err, &esc))
}

func TestResolveMissingRoot(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing"), "a")
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, WriteFile(root, "deep/nested/run.sh", []byte("#!/bin/sh\n"), 0755))
	path := filepath.Join(root, "deep", "nested", "run.sh")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWriteFileRejectsEscape(t *testing.T) {
	root := t.TempDir()
	assert.Error(t, WriteFile(root, "../out.txt", []byte("x"), 0644))
	assert.Error(t, MkdirAll(root, "../out", 0755))
}

func TestWriteAtomicReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, WriteAtomic(path, []byte("one"), 0644))
	require.NoError(t, WriteAtomic(path, []byte("two"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}
