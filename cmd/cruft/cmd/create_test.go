package cmd

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christokur/cruft/internal/state"
)

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

func templateRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	gitRun(t, dir, "init", "-q")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "{{cookiecutter.project_slug}}"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cookiecutter.json"),
		[]byte(`{"project_name": "Demo", "project_slug": "{{ cookiecutter.project_name | slugify }}"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "{{cookiecutter.project_slug}}", "README.md"),
		[]byte("# {{ cookiecutter.project_name }}\n"), 0644))
	gitRun(t, dir, "add", ".")
	gitRun(t, dir, "commit", "-q", "-m", "initial")
	gitRun(t, dir, "tag", "1.0.0")
	return dir
}

// resetCreateFlags restores the create flags to their defaults after a test.
func resetCreateFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		createOutputDir = "."
		createConfigFile = ""
		createDefaultConfig = false
		createReplayFile = ""
		createExtraContext = ""
		createExtraContextFile = ""
		createNoInput = false
		createDirectory = ""
		createCheckout = ""
		createOverwrite = false
		createSkip = nil
	})
}

func TestCreateCommand(t *testing.T) {
	repo := templateRepo(t)
	resetCreateFlags(t)
	t.Setenv("HOME", t.TempDir())
	out := t.TempDir()

	createOutputDir = out
	createNoInput = true
	createExtraContext = `{"project_name": "Big Widget"}`
	createCheckout = ":latest:"
	createSkip = []string{"README.md"}

	var stdout bytes.Buffer
	createCmd.SetOut(&stdout)
	createCmd.SetIn(strings.NewReader(""))
	createCmd.SetContext(context.Background())

	require.NoError(t, createCmd.RunE(createCmd, []string{repo}))

	projectDir := filepath.Join(out, "big-widget")
	assert.Equal(t, "Created project in "+projectDir+"\n", stdout.String())

	st, err := state.Load(filepath.Join(projectDir, state.FileName))
	require.NoError(t, err)
	require.NotNil(t, st.Checkout)
	assert.Equal(t, "1.0.0", *st.Checkout)
	assert.Equal(t, []string{"README.md"}, st.Skip)
}

func TestCreateCommandPrompts(t *testing.T) {
	repo := templateRepo(t)
	resetCreateFlags(t)
	t.Setenv("HOME", t.TempDir())
	out := t.TempDir()

	createOutputDir = out

	var stdout bytes.Buffer
	createCmd.SetOut(&stdout)
	createCmd.SetIn(strings.NewReader("Answered Name\n\n"))
	createCmd.SetContext(context.Background())

	require.NoError(t, createCmd.RunE(createCmd, []string{repo}))
	assert.Contains(t, stdout.String(), "project_name [Demo]: ")

	readme, err := os.ReadFile(filepath.Join(out, "answered-name", "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Answered Name\n", string(readme))
}

func TestCreateCommandBadExtraContext(t *testing.T) {
	resetCreateFlags(t)
	createExtraContext = "not json"
	createCmd.SetContext(context.Background())

	err := createCmd.RunE(createCmd, []string{"tpl"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--extra-context")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, buf.String(), "cruft dev")
}
