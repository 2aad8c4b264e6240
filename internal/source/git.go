package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Git drives the git binary for the operations cruft needs on a template
// repository. Every method targets an explicit directory.
type Git struct {
	// Binary is the git executable. Empty means "git" from PATH.
	Binary string
}

// GitError is returned when a git command exits unsuccessfully.
type GitError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s: %s", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// Clone clones url into dir. dir must be empty or not exist.
func (g *Git) Clone(ctx context.Context, url, dir string) error {
	_, err := g.run(ctx, "", "clone", url, dir)
	return err
}

// Tags lists the repository's tag names in lexicographic order.
func (g *Git) Tags(ctx context.Context, dir string) ([]string, error) {
	out, err := g.run(ctx, dir, "for-each-ref", "--sort=refname", "--format=%(refname:short)", "refs/tags")
	if err != nil {
		return nil, err
	}
	var tags []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tags = append(tags, line)
		}
	}
	return tags, nil
}

// Checkout checks out ref, which may be a branch, tag or commit.
func (g *Git) Checkout(ctx context.Context, dir, ref string) error {
	_, err := g.run(ctx, dir, "checkout", ref)
	return err
}

// HeadCommit returns the full hash of the checked-out commit.
func (g *Git) HeadCommit(ctx context.Context, dir string) (string, error) {
	out, err := g.run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (g *Git) run(ctx context.Context, dir string, args ...string) (string, error) {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}
	fullArgs := args
	if dir != "" {
		fullArgs = append([]string{"-C", dir}, args...)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, fullArgs...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &GitError{Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return stdout.String(), nil
}

// StderrOf returns the stderr text carried by a git failure, or the error
// text itself for anything else.
func StderrOf(err error) string {
	var ge *GitError
	if errors.As(err, &ge) && ge.Stderr != "" {
		return ge.Stderr
	}
	return err.Error()
}
