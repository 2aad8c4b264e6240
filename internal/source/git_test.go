package source

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository with two commits and the given tags on the
// second commit. It returns the repository directory and the first commit.
func initRepo(t *testing.T, tags ...string) (string, string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	run := func(args ...string) string {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@test.com")
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("git %v: %s: %v", args, out, err)
		}
		return string(out)
	}

	run("init", "-b", "main")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("one\n"), 0644))
	run("add", ".")
	run("commit", "-m", "first")
	first := run("rev-parse", "HEAD")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("two\n"), 0644))
	run("commit", "-am", "second")
	for _, tag := range tags {
		run("tag", tag)
	}
	return dir, first[:len(first)-1]
}

func TestGitCloneTagsCheckoutHead(t *testing.T) {
	origin, first := initRepo(t, "v1.1.0", "v1.0.0", "release")
	g := &Git{}
	ctx := context.Background()

	dest := filepath.Join(t.TempDir(), "clone")
	require.NoError(t, g.Clone(ctx, origin, dest))

	tags, err := g.Tags(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, []string{"release", "v1.0.0", "v1.1.0"}, tags)

	head, err := g.HeadCommit(ctx, dest)
	require.NoError(t, err)
	assert.Len(t, head, 40)
	assert.NotEqual(t, first, head)

	require.NoError(t, g.Checkout(ctx, dest, first))
	head, err = g.HeadCommit(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, first, head)
}

func TestGitTagsEmpty(t *testing.T) {
	origin, _ := initRepo(t)
	tags, err := (&Git{}).Tags(context.Background(), origin)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestGitCheckoutUnknownRef(t *testing.T) {
	origin, _ := initRepo(t)
	err := (&Git{}).Checkout(context.Background(), origin, "DNE")
	require.Error(t, err)

	var ge *GitError
	require.True(t, errors.As(err, &ge))
	assert.NotEmpty(t, ge.Stderr)
	assert.Equal(t, ge.Stderr, StderrOf(err))
}

func TestGitCloneMissingRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dest := filepath.Join(t.TempDir(), "clone")
	err := (&Git{}).Clone(context.Background(), filepath.Join(t.TempDir(), "missing"), dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git clone")
}

func TestStderrOfPlainError(t *testing.T) {
	assert.Equal(t, "boom", StderrOf(errors.New("boom")))
}
