package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/christokur/cruft/internal/errs"
)

// LoadOptions selects the configuration to load.
type LoadOptions struct {
	// Path is an explicit config file. It must exist.
	Path string
	// UseDefault ignores every config file.
	UseDefault bool
	// Env supplies COOKIECUTTER_CONFIG.
	Env Env
	// Home overrides the user's home directory.
	Home string
}

// Load returns the effective configuration: the built-in defaults overlaid
// with the file Discover selects, if any.
func Load(opts LoadOptions) (*Config, error) {
	home := opts.Home
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	path, _ := Discover(opts, home)
	if path == "" {
		return Default(home), nil
	}
	return LoadFile(path, home)
}

// LoadFile reads the YAML config file at path over the defaults.
func LoadFile(path, home string) (*Config, error) {
	path = expandPath(path, home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.ConfigError{Path: path, Err: fmt.Errorf("reading config: %w", err)}
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &errs.ConfigError{Path: path, Err: fmt.Errorf("parsing config: %w", err)}
	}
	if raw == nil {
		return nil, &errs.ConfigError{Path: path, Err: fmt.Errorf("top-level element must be a mapping")}
	}

	cfg := Default(home)
	if err := Overlay(cfg, raw); err != nil {
		return nil, &errs.ConfigError{Path: path, Err: err}
	}
	if problems := Validate(cfg); len(problems) > 0 {
		return nil, &errs.ConfigError{Path: path, Err: &ValidationError{Errors: problems}}
	}
	cfg.CookiecuttersDir = expandPath(cfg.CookiecuttersDir, home)
	cfg.ReplayDir = expandPath(cfg.ReplayDir, home)
	return cfg, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
func Validate(cfg *Config) []string {
	var problems []string
	if cfg.ReplayDir == "" {
		problems = append(problems, "'replay_dir' must not be empty")
	}
	if cfg.CookiecuttersDir == "" {
		problems = append(problems, "'cookiecutters_dir' must not be empty")
	}
	for k, v := range cfg.Abbreviations {
		if v == "" {
			problems = append(problems, fmt.Sprintf("abbreviation '%s' has no expansion", k))
		}
	}
	sort.Strings(problems)
	return problems
}
