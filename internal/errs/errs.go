// Package errs defines the error kinds cruft reports to its callers.
//
// Errors raised by collaborators (git, the renderer, decoders) are converted
// into one of these kinds where the collaborator is invoked, so callers can
// rely on errors.As against this package alone.
package errs

import (
	"fmt"
	"strings"
)

// RepositoryError reports that the template repository could not be cloned
// or that the requested reference could not be checked out.
type RepositoryError struct {
	Template string
	Details  string
	Err      error
}

func (e *RepositoryError) Error() string {
	msg := fmt.Sprintf("Unable to initialize the cookiecutter using %s!", e.Template)
	if d := strings.TrimSpace(e.Details); d != "" {
		msg += " " + d
	}
	return msg
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// TemplateNotFoundError reports that no template root directory exists.
type TemplateNotFoundError struct {
	Dir string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("Was unable to locate a Cookiecutter template in the directory %s", e.Dir)
}

// ReplayError reports a missing or unreadable replay file, or a failure to
// write one back.
type ReplayError struct {
	Path    string
	Details string
	Err     error
}

func (e *ReplayError) Error() string {
	msg := fmt.Sprintf("Unable to load the replay file %s!", e.Path)
	if d := strings.TrimSpace(e.Details); d != "" {
		msg += " " + d
	}
	return msg
}

func (e *ReplayError) Unwrap() error {
	return e.Err
}

// RenderError reports a failure while generating the project from the
// template. Message never carries the renderer's generic "Error: " prefix.
type RenderError struct {
	Message string
	Err     error
}

func (e *RenderError) Error() string {
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError converts a renderer failure into a RenderError.
func NewRenderError(err error) *RenderError {
	return &RenderError{Message: StripGenericPrefix(err.Error()), Err: err}
}

// ConfigError reports a malformed configuration input: the user config
// file, an extra-context file or the template's own context file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %s", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IOError reports a local input or output failure outside the template
// itself: the scratch directory for the clone, reading prompt answers or
// writing the state record.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// StripGenericPrefix removes a leading "Error: " from msg.
func StripGenericPrefix(msg string) string {
	return strings.TrimPrefix(msg, "Error: ")
}
