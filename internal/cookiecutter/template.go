package cookiecutter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/christokur/cruft/internal/errs"
)

// ContextFileName is the file declaring a template's default context.
const ContextFileName = "cookiecutter.json"

// IsTemplateRootName reports whether name looks like a template root
// directory, e.g. "{{cookiecutter.project_slug}}".
func IsTemplateRootName(name string) bool {
	return strings.Contains(name, "cookiecutter.") &&
		strings.Contains(name, "{{") &&
		strings.Contains(name, "}}")
}

// FindTemplateRoot returns the first directory directly inside dir whose
// name uses the template variable syntax.
func FindTemplateRoot(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", &errs.TemplateNotFoundError{Dir: dir}
	}
	for _, e := range entries {
		if e.IsDir() && IsTemplateRootName(e.Name()) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", &errs.TemplateNotFoundError{Dir: dir}
}

// LoadTemplateContext reads the default context declared in dir's
// cookiecutter.json. Comments and trailing commas are tolerated.
func LoadTemplateContext(dir string) (*Context, error) {
	path := filepath.Join(dir, ContextFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.ConfigError{Path: path, Err: fmt.Errorf("reading template context: %w", err)}
	}
	ctx := NewContext()
	if err := json.Unmarshal(jsonc.ToJSON(data), ctx); err != nil {
		return nil, &errs.ConfigError{Path: path, Err: fmt.Errorf("decoding template context: %w", err)}
	}
	return ctx, nil
}
