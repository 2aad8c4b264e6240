package cookiecutter

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/christokur/cruft/internal/errs"
)

// ApplyOverwrites overlays overwrites onto base in place.
//
// A scalar overwrite of a choice variable (a list in base) must be one of
// the choices; the list is reordered so that choice comes first, making it
// the default. Every other overwrite replaces the value. Keys not declared
// in base are appended.
func ApplyOverwrites(base, overwrites *Context) error {
	for _, k := range overwrites.Keys() {
		v, _ := overwrites.Get(k)
		current, ok := base.Get(k)
		choices, isChoice := current.([]any)
		if !ok || !isChoice {
			base.Set(k, v)
			continue
		}
		if _, overwriteIsList := v.([]any); overwriteIsList {
			base.Set(k, v)
			continue
		}
		reordered, err := promoteChoice(choices, v)
		if err != nil {
			return &errs.ConfigError{Err: fmt.Errorf("variable %q: %w", k, err)}
		}
		base.Set(k, reordered)
	}
	return nil
}

// ApplyDeclaredOverwrites is ApplyOverwrites restricted to keys base
// already declares. It is used for user-level default contexts, which apply
// to every template and must not add variables to any of them.
func ApplyDeclaredOverwrites(base, overwrites *Context) error {
	declared := NewContext()
	for _, k := range overwrites.Keys() {
		if base.Has(k) {
			v, _ := overwrites.Get(k)
			declared.Set(k, v)
		}
	}
	return ApplyOverwrites(base, declared)
}

func promoteChoice(choices []any, choice any) ([]any, error) {
	for i, c := range choices {
		if sameValue(c, choice) {
			out := make([]any, 0, len(choices))
			out = append(out, c)
			out = append(out, choices[:i]...)
			out = append(out, choices[i+1:]...)
			return out, nil
		}
	}
	return nil, fmt.Errorf("%v provided for choice variable is not a valid choice of %v", choice, choices)
}

// sameValue is reflect.DeepEqual, except that a json.Number equals any Go
// number with the same decimal form.
func sameValue(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	if n, ok := a.(json.Number); ok && isNumber(b) {
		return n.String() == fmt.Sprint(b)
	}
	if n, ok := b.(json.Number); ok && isNumber(a) {
		return n.String() == fmt.Sprint(a)
	}
	return false
}

func isNumber(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
