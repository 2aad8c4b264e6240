package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/christokur/cruft/internal/cookiecutter"
	"github.com/christokur/cruft/internal/sandbox"
)

// Build assembles a State. Empty checkout and directory are recorded as
// null; an empty skip list is omitted.
func Build(template, commit, checkout string, ctx *cookiecutter.Context, directory string, skip []string) *State {
	st := &State{
		Template:  template,
		Commit:    commit,
		Checkout:  optional(checkout),
		Context:   Context{Cookiecutter: ctx},
		Directory: optional(directory),
	}
	if len(skip) > 0 {
		st.Skip = append([]string(nil), skip...)
	}
	return st
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Marshal encodes st as indented JSON with a trailing newline. The output
// depends only on st, so unchanged projects produce unchanged files.
func Marshal(st *State) ([]byte, error) {
	if st.Context.Cookiecutter == nil {
		st.Context.Cookiecutter = cookiecutter.NewContext()
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		return nil, fmt.Errorf("marshaling state: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes st to .cruft.json inside projectDir.
func Save(projectDir string, st *State) error {
	data, err := Marshal(st)
	if err != nil {
		return err
	}
	if err := sandbox.WriteFile(projectDir, FileName, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", FileName, err)
	}
	return nil
}

// Load reads and validates a state file.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading state %s: %w", path, err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing state %s: %w", path, err)
	}
	if problems := Validate(&st); len(problems) > 0 {
		return nil, &ValidationError{Path: path, Errors: problems}
	}
	return &st, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Path   string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("state %s is invalid:\n  - %s", e.Path, strings.Join(e.Errors, "\n  - "))
}

// Validate checks the fields a later update relies on.
func Validate(st *State) []string {
	var problems []string
	if st.Template == "" {
		problems = append(problems, "'template' is required")
	}
	if st.Commit == "" {
		problems = append(problems, "'commit' is required")
	}
	if st.Context.Cookiecutter == nil {
		problems = append(problems, "'context.cookiecutter' is required")
	}
	return problems
}
