// Package cookiecutter holds the rendering context model and the pieces of a
// cookiecutter template that cruft reads directly: the template root
// directory, the declared default context and the prompts for it.
package cookiecutter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Context is an ordered mapping from variable name to value. Declaration
// order from cookiecutter.json is kept so prompts and the state record
// follow the template author's order.
//
// The zero value is an empty context. A nil *Context reads as empty.
type Context struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{m: orderedmap.New[string, any]()}
}

// ContextFromMap builds a context from m with keys in sorted order.
func ContextFromMap(m map[string]any) *Context {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	c := NewContext()
	for _, k := range keys {
		c.Set(k, m[k])
	}
	return c
}

// IsEngineKey reports whether key names an engine variable. Engine
// variables are never prompted for and are passed to the renderer verbatim.
func IsEngineKey(key string) bool {
	return strings.HasPrefix(key, "_")
}

// Get returns the value for key.
func (c *Context) Get(key string) (any, bool) {
	if c == nil || c.m == nil {
		return nil, false
	}
	return c.m.Get(key)
}

// Set stores value under key. New keys are appended; existing keys keep
// their position.
func (c *Context) Set(key string, value any) {
	if c.m == nil {
		c.m = orderedmap.New[string, any]()
	}
	c.m.Set(key, value)
}

// Delete removes key.
func (c *Context) Delete(key string) {
	if c == nil || c.m == nil {
		return
	}
	c.m.Delete(key)
}

// Has reports whether key is present.
func (c *Context) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Len returns the number of variables.
func (c *Context) Len() int {
	if c == nil || c.m == nil {
		return 0
	}
	return c.m.Len()
}

// Keys returns the variable names in order.
func (c *Context) Keys() []string {
	if c == nil || c.m == nil {
		return nil
	}
	keys := make([]string, 0, c.m.Len())
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Clone returns a shallow copy of c.
func (c *Context) Clone() *Context {
	out := NewContext()
	if c == nil || c.m == nil {
		return out
	}
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		out.m.Set(pair.Key, pair.Value)
	}
	return out
}

// Map returns the variables as a plain map.
func (c *Context) Map() map[string]any {
	out := make(map[string]any, c.Len())
	if c == nil || c.m == nil {
		return out
	}
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// Split partitions c into engine variables and user variables, keeping the
// order within each group.
func (c *Context) Split() (engine, user *Context) {
	engine, user = NewContext(), NewContext()
	for _, k := range c.Keys() {
		v, _ := c.Get(k)
		if IsEngineKey(k) {
			engine.Set(k, v)
		} else {
			user.Set(k, v)
		}
	}
	return engine, user
}

// Update copies every variable of other into c, overriding on collision.
func (c *Context) Update(other *Context) {
	for _, k := range other.Keys() {
		v, _ := other.Get(k)
		c.Set(k, v)
	}
}

// MarshalJSON encodes c as a JSON object in key order without HTML escaping.
// json.Marshal re-escapes the result; call this directly to keep it verbatim.
func (c *Context) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		v, _ := c.Get(k)
		if err := writeJSON(&buf, v); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping its key order. Nested
// objects decode to *Context so their order survives too, and numbers
// decode to json.Number so large integers keep every digit.
func (c *Context) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		c.m = orderedmap.New[string, any]()
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("context must be a JSON object, got %v", tok)
	}
	out, err := decodeObject(dec)
	if err != nil {
		return err
	}
	c.m = out.m
	return nil
}

// decodeObject reads the members of an object whose opening brace has
// already been consumed.
func decodeObject(dec *json.Decoder) (*Context, error) {
	out := NewContext()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		out.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch d {
	case '{':
		return decodeObject(dec)
	case '[':
		items := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", d)
}

// Plain converts nested contexts inside v to map[string]any, recursing
// into lists, so templates can reach nested values by field name.
func Plain(v any) any {
	switch t := v.(type) {
	case *Context:
		out := make(map[string]any, t.Len())
		for _, k := range t.Keys() {
			nested, _ := t.Get(k)
			out[k] = Plain(nested)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Plain(item)
		}
		return out
	default:
		return v
	}
}

func writeJSON(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
