package cookiecutter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"

	"github.com/christokur/cruft/internal/errs"
)

// LoadExtraContextFile reads a flat key/value mapping from path. A missing
// file yields an empty context. Files named *.env use dotenv syntax; any
// other file must hold a JSON object.
func LoadExtraContextFile(path string) (*Context, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewContext(), nil
	}

	if filepath.Ext(path) == ".env" || filepath.Base(path) == ".env" {
		vars, err := godotenv.Read(path)
		if err != nil {
			return nil, &errs.ConfigError{Path: path, Err: fmt.Errorf("parsing extra context: %w", err)}
		}
		m := make(map[string]any, len(vars))
		for k, v := range vars {
			m[k] = v
		}
		return ContextFromMap(m), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.ConfigError{Path: path, Err: fmt.Errorf("reading extra context: %w", err)}
	}
	ctx := NewContext()
	if err := json.Unmarshal(jsonc.ToJSON(data), ctx); err != nil {
		return nil, &errs.ConfigError{Path: path, Err: fmt.Errorf("parsing extra context: %w", err)}
	}
	return ctx, nil
}
