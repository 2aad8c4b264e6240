// Package render generates a project from a cookiecutter template tree.
//
// Directory names, file names and file contents are Go text/templates.
// Variables are read through the cookiecutter function, so the usual
// {{ cookiecutter.project_slug }} spelling works unchanged.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/christokur/cruft/internal/cookiecutter"
	"github.com/christokur/cruft/internal/logging"
	"github.com/christokur/cruft/internal/sandbox"
)

// CopyWithoutRenderKey lists glob patterns of files copied verbatim.
const CopyWithoutRenderKey = "_copy_without_render"

// Renderer writes projects from templates.
type Renderer struct {
	Logger *slog.Logger
}

// Render generates the project described by templateDir into outputDir
// and returns the absolute project directory.
func (r *Renderer) Render(templateDir string, ctx *cookiecutter.Context, outputDir string, overwrite bool) (string, error) {
	log := logging.OrDiscard(r.Logger)

	root, err := cookiecutter.FindTemplateRoot(templateDir)
	if err != nil {
		return "", err
	}
	vars, err := Resolve(ctx)
	if err != nil {
		return "", err
	}
	copyPatterns := stringList(vars[CopyWithoutRenderKey])
	funcs := funcMap(vars)

	name, err := renderString(filepath.Base(root), filepath.Base(root), funcs)
	if err != nil {
		return "", err
	}
	if err := checkName(filepath.Base(root), name); err != nil {
		return "", err
	}

	outAbs, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	projectDir := filepath.Join(outAbs, name)
	if _, err := os.Stat(projectDir); err == nil && !overwrite {
		return "", &OutputDirExistsError{Dir: projectDir}
	}
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return "", fmt.Errorf("creating project directory: %w", err)
	}

	parent := filepath.Dir(root)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out, err := renderPath(rel, funcs)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			return sandbox.MkdirAll(projectDir, out, info.Mode().Perm()|0700)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		srcRel, _ := filepath.Rel(parent, path)
		verbatim := isBinary(data) || matchAny(copyPatterns, srcRel) || matchAny(copyPatterns, out)
		if !verbatim {
			rendered, err := renderString(rel, string(data), funcs)
			if err != nil {
				return err
			}
			data = []byte(rendered)
		}
		if err := sandbox.WriteFile(projectDir, out, data, info.Mode().Perm()); err != nil {
			return err
		}
		log.Debug("wrote file", "path", out, "verbatim", verbatim)
		return nil
	})
	if err != nil {
		return "", err
	}
	return projectDir, nil
}

// Resolve returns the variables a template sees. User variables are
// resolved in declaration order: a choice list yields its first entry and
// string values are themselves rendered, so defaults may refer to earlier
// variables. Engine variables are passed through.
func Resolve(ctx *cookiecutter.Context) (map[string]any, error) {
	vars := make(map[string]any, ctx.Len())
	funcs := funcMap(vars)
	for _, k := range ctx.Keys() {
		v, _ := ctx.Get(k)
		v = cookiecutter.Plain(v)
		if cookiecutter.IsEngineKey(k) {
			vars[k] = v
			continue
		}
		if choices, ok := v.([]any); ok && len(choices) > 0 {
			v = choices[0]
		}
		if s, ok := v.(string); ok && strings.Contains(s, "{{") {
			rendered, err := renderString(k, s, funcs)
			if err != nil {
				return nil, err
			}
			v = rendered
		}
		vars[k] = v
	}
	return vars, nil
}

func renderString(name, text string, funcs template.FuncMap) (string, error) {
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", &TemplateError{Path: name, Err: err}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return "", &TemplateError{Path: name, Err: err}
	}
	return buf.String(), nil
}

// renderPath renders each element of rel separately.
func renderPath(rel string, funcs template.FuncMap) (string, error) {
	parts := strings.Split(rel, string(filepath.Separator))
	for i, p := range parts {
		if !strings.Contains(p, "{{") {
			continue
		}
		out, err := renderString(rel, p, funcs)
		if err != nil {
			return "", err
		}
		if err := checkName(rel, out); err != nil {
			return "", err
		}
		parts[i] = out
	}
	return filepath.Join(parts...), nil
}

func checkName(src, name string) error {
	if strings.TrimSpace(name) == "" {
		return &TemplateError{Path: src, Err: errors.New("name renders empty")}
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return &TemplateError{Path: src, Err: fmt.Errorf("name renders to invalid path element %q", name)}
	}
	return nil
}

func matchAny(patterns []string, rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func isBinary(data []byte) bool {
	return !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0
}
