package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/christokur/cruft/internal/cookiecutter"
	"github.com/christokur/cruft/internal/errs"
)

// parseExtraContext decodes the --extra-context flag. An empty value means
// no overrides.
func parseExtraContext(raw string) (*cookiecutter.Context, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	ctx := cookiecutter.NewContext()
	if err := json.Unmarshal(jsonc.ToJSON([]byte(raw)), ctx); err != nil {
		return nil, &errs.ConfigError{Err: fmt.Errorf("--extra-context must be a JSON object: %w", err)}
	}
	return ctx, nil
}
