package render

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// funcMap returns the template functions available to a template.
// cookiecutter returns vars, so {{ cookiecutter.name }} reads a variable.
func funcMap(vars map[string]any) template.FuncMap {
	title := cases.Title(language.Und)
	return template.FuncMap{
		"cookiecutter": func() map[string]any { return vars },
		"lower":        func(v any) string { return strings.ToLower(str(v)) },
		"upper":        func(v any) string { return strings.ToUpper(str(v)) },
		"title":        func(v any) string { return title.String(str(v)) },
		"trim":         func(v any) string { return strings.TrimSpace(str(v)) },
		"replace": func(old, repl string, v any) string {
			return strings.ReplaceAll(str(v), old, repl)
		},
		"slugify": func(v any) string {
			return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(str(v)), "-"), "-")
		},
		"join": func(sep string, v any) string {
			items, ok := v.([]any)
			if !ok {
				return str(v)
			}
			parts := make([]string, len(items))
			for i, it := range items {
				parts[i] = str(it)
			}
			return strings.Join(parts, sep)
		},
		"default": func(def, v any) any {
			if isEmpty(v) {
				return def
			}
			return v
		},
	}
}

func str(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	}
	return rv.IsZero()
}
