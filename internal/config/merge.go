package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Overlay decodes raw onto base. Only keys present in raw change base;
// mappings (default_context, abbreviations) are merged key by key.
func Overlay(base *Config, raw map[string]any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           base,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}

// expandPath expands environment variables and a leading ~ in p.
func expandPath(p, home string) string {
	p = os.ExpandEnv(p)
	if home == "" {
		return p
	}
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return filepath.Join(home, p[2:]) + trailingSep(p)
	}
	return p
}

func trailingSep(p string) string {
	if strings.HasSuffix(p, "/") || strings.HasSuffix(p, string(filepath.Separator)) {
		return string(filepath.Separator)
	}
	return ""
}
