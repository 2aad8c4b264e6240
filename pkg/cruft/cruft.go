// Package cruft provides the public Go library API for cruft.
//
// cruft generates a project from a git-hosted cookiecutter template and
// records the template, commit and context used in a .cruft.json file so
// the project can later be checked and updated against the template.
//
// # Basic Usage
//
//	dir, err := cruft.Create(ctx, cruft.CreateOptions{
//	    Template:  "https://github.com/org/cookiecutter-python.git",
//	    OutputDir: ".",
//	    NoInput:   true,
//	    Checkout:  ":latest:",
//	})
package cruft

import (
	"context"
	"io"
	"log/slog"

	"github.com/christokur/cruft/internal/config"
	"github.com/christokur/cruft/internal/cookiecutter"
	"github.com/christokur/cruft/internal/engine"
	"github.com/christokur/cruft/internal/render"
	"github.com/christokur/cruft/internal/source"
)

// CreateOptions configures a create operation.
type CreateOptions = engine.CreateOptions

// Context is an ordered rendering context.
type Context = cookiecutter.Context

// Prompter asks for template variables.
type Prompter = cookiecutter.Prompter

// NewContext returns an empty context for CreateOptions.ExtraContext.
func NewContext() *Context {
	return cookiecutter.NewContext()
}

// Options configures a Client.
type Options struct {
	// Logger receives progress logs. Nil discards them.
	Logger *slog.Logger
	// Prompter replaces the default line prompter on In and Out.
	Prompter Prompter
	In       io.Reader
	Out      io.Writer
	// Env replaces the settings read from the process environment.
	Env *config.Env
	// GitBinary is the git executable. Empty means "git" from PATH.
	GitBinary string
}

// Client creates projects.
type Client struct {
	engine *engine.CreateEngine
}

// New returns a Client.
func New(opts Options) (*Client, error) {
	var env config.Env
	if opts.Env != nil {
		env = *opts.Env
	} else {
		var err error
		if env, err = config.LoadEnv(); err != nil {
			return nil, err
		}
	}

	prompter := opts.Prompter
	if prompter == nil {
		lp := cookiecutter.NewLinePrompter()
		if opts.In != nil {
			lp.In = opts.In
		}
		if opts.Out != nil {
			lp.Out = opts.Out
		}
		prompter = lp
	}

	return &Client{engine: &engine.CreateEngine{
		VCS:      &source.Git{Binary: opts.GitBinary},
		Renderer: &render.Renderer{Logger: opts.Logger},
		Prompter: prompter,
		Env:      env,
		Logger:   opts.Logger,
	}}, nil
}

// Create generates a project and returns its directory.
func (c *Client) Create(ctx context.Context, opts CreateOptions) (string, error) {
	if c.engine.Env.NoInput {
		opts.NoInput = true
	}
	return c.engine.Create(ctx, opts)
}

// Create generates a project with a default Client.
func Create(ctx context.Context, opts CreateOptions) (string, error) {
	c, err := New(Options{})
	if err != nil {
		return "", err
	}
	return c.Create(ctx, opts)
}
