package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/christokur/cruft/internal/assemble"
	"github.com/christokur/cruft/internal/checkout"
	"github.com/christokur/cruft/internal/config"
	"github.com/christokur/cruft/internal/cookiecutter"
	"github.com/christokur/cruft/internal/errs"
	"github.com/christokur/cruft/internal/logging"
	"github.com/christokur/cruft/internal/source"
	"github.com/christokur/cruft/internal/state"
)

// VCS is the version control collaborator. Every method works on the
// clone directory.
type VCS interface {
	Clone(ctx context.Context, url, dir string) error
	Tags(ctx context.Context, dir string) ([]string, error)
	Checkout(ctx context.Context, dir, ref string) error
	HeadCommit(ctx context.Context, dir string) (string, error)
}

// Renderer generates a project from a template directory and returns the
// project directory.
type Renderer interface {
	Render(templateDir string, ctx *cookiecutter.Context, outputDir string, overwrite bool) (string, error)
}

// CreateEngine orchestrates project creation.
type CreateEngine struct {
	VCS      VCS
	Renderer Renderer
	Prompter cookiecutter.Prompter
	Env      config.Env
	// Home overrides the directory searched for the user config.
	Home   string
	Logger *slog.Logger
}

// CreateOptions configures a create operation.
type CreateOptions struct {
	// Template is a repository URL, local path or abbreviation.
	Template  string
	OutputDir string

	ConfigFile    string
	DefaultConfig bool
	ReplayFile    string

	ExtraContext     *cookiecutter.Context
	ExtraContextFile string
	NoInput          bool

	// Directory selects a template inside a subdirectory of the repository.
	Directory string
	// Checkout is a ref, "branch:<name>" or ":latest:".
	Checkout  string
	Overwrite bool
	// Skip is recorded in the state for later updates.
	Skip []string
}

// Create clones the template, assembles its context, renders the project
// and writes .cruft.json into it. The clone is removed on every path.
func (e *CreateEngine) Create(ctx context.Context, opts CreateOptions) (string, error) {
	log := logging.OrDiscard(e.Logger)

	template := source.ResolveTemplateURL(opts.Template)
	cfg, err := config.Load(config.LoadOptions{
		Path:       opts.ConfigFile,
		UseDefault: opts.DefaultConfig,
		Env:        e.Env,
		Home:       e.Home,
	})
	if err != nil {
		return "", err
	}
	cloneURL := source.ExpandAbbreviations(template, cfg.Abbreviations)
	log.Debug("resolved template", "template", template, "url", cloneURL)

	workDir, err := os.MkdirTemp("", "cruft-")
	if err != nil {
		return "", &errs.IOError{Op: "creating clone directory", Err: err}
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			log.Warn("removing clone directory", "dir", workDir, "error", err)
		}
	}()

	repoDir := filepath.Join(workDir, "repo")
	log.Debug("cloning template", "dir", repoDir)
	if err := e.VCS.Clone(ctx, cloneURL, repoDir); err != nil {
		return "", &errs.RepositoryError{
			Template: template,
			Details:  "Failed to clone the repo. " + source.StderrOf(err),
			Err:      err,
		}
	}

	recorded, err := e.checkout(ctx, template, repoDir, opts.Checkout)
	if err != nil {
		return "", err
	}

	commit, err := e.VCS.HeadCommit(ctx, repoDir)
	if err != nil {
		return "", &errs.RepositoryError{
			Template: template,
			Details:  "Failed to read the current commit. " + source.StderrOf(err),
			Err:      err,
		}
	}
	log.Debug("template commit", "commit", commit)

	templateDir := repoDir
	if opts.Directory != "" {
		templateDir = filepath.Join(repoDir, opts.Directory)
	}

	asm := &assemble.Assembler{Prompter: e.Prompter, Env: e.Env, Home: e.Home, Logger: e.Logger}
	rc, err := asm.Assemble(assemble.Options{
		TemplateRef:      opts.Template,
		TemplateDir:      templateDir,
		ConfigFile:       opts.ConfigFile,
		DefaultConfig:    opts.DefaultConfig,
		ExtraContext:     opts.ExtraContext,
		ExtraContextFile: opts.ExtraContextFile,
		NoInput:          opts.NoInput,
		ReplayFile:       opts.ReplayFile,
	})
	if err != nil {
		return "", err
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	projectDir, err := e.Renderer.Render(templateDir, rc, outputDir, opts.Overwrite)
	if err != nil {
		return "", errs.NewRenderError(err)
	}

	st := state.Build(template, commit, recorded, rc, opts.Directory, opts.Skip)
	if err := state.Save(projectDir, st); err != nil {
		return "", &errs.IOError{Op: "recording project state in", Path: projectDir, Err: err}
	}

	log.Info("created project", "dir", projectDir, "template", template, "commit", commit)
	return projectDir, nil
}

// checkout applies the checkout policy to the clone and returns the value
// recorded in the state. An empty policy leaves the default branch.
func (e *CreateEngine) checkout(ctx context.Context, template, dir, raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	policy := checkout.Parse(raw)

	var tags []string
	if policy.NeedsTags() {
		var err error
		tags, err = e.VCS.Tags(ctx, dir)
		if err != nil {
			return "", &errs.RepositoryError{
				Template: template,
				Details:  "Failed to list tags. " + source.StderrOf(err),
				Err:      err,
			}
		}
	}

	ref := checkout.Resolve(policy, tags)
	logging.OrDiscard(e.Logger).Debug("resolved checkout", "policy", policy.Kind.String(), "ref", ref)

	if err := e.VCS.Checkout(ctx, dir, ref); err != nil {
		return "", &errs.RepositoryError{
			Template: template,
			Details:  fmt.Sprintf("Failed to check out the reference %s. %s", ref, source.StderrOf(err)),
			Err:      err,
		}
	}
	return checkout.Recorded(policy, ref), nil
}
