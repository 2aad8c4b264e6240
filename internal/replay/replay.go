// Package replay stores rendering contexts so a later run can reproduce
// them without prompting.
package replay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/christokur/cruft/internal/cookiecutter"
	"github.com/christokur/cruft/internal/sandbox"
)

// contextKey is the top-level key a replay file nests the context under.
const contextKey = "cookiecutter"

// Store is a directory of named replay files.
type Store struct {
	Dir string
}

// FileName returns the file name for a replay called name.
func FileName(name string) string {
	if strings.HasSuffix(name, ".json") {
		return name
	}
	return name + ".json"
}

// Path returns the location of the replay called name.
func (s Store) Path(name string) string {
	return filepath.Join(s.Dir, FileName(name))
}

// LoadFile reads the replay file at path.
func LoadFile(path string) (*cookiecutter.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading replay: %w", err)
	}
	return Decode(data)
}

// SaveFile atomically writes ctx as a replay file at path, creating the
// directory if needed.
func SaveFile(path string, ctx *cookiecutter.Context) error {
	data, err := Encode(ctx)
	if err != nil {
		return err
	}
	return sandbox.WriteAtomic(path, data, 0644)
}

// Decode parses a replay document of the form {"cookiecutter": {...}}.
func Decode(data []byte) (*cookiecutter.Context, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, fmt.Errorf("decoding replay: %w", err)
	}
	raw, ok := doc[contextKey]
	if !ok {
		return nil, errors.New(`context is required to contain a "cookiecutter" key`)
	}
	ctx := cookiecutter.NewContext()
	if err := json.Unmarshal(raw, ctx); err != nil {
		return nil, fmt.Errorf("decoding replay context: %w", err)
	}
	return ctx, nil
}

// Encode renders ctx as a replay document. Equal contexts encode to equal
// bytes.
func Encode(ctx *cookiecutter.Context) ([]byte, error) {
	inner, err := ctx.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding replay: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(`{"` + contextKey + `":`)
	buf.Write(inner)
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("encoding replay: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
