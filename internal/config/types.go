// Package config loads the engine configuration: the user-level cookiecutter
// settings shared by every template, and the process environment cruft
// reads once per invocation.
package config

import "path/filepath"

// Config mirrors the user configuration file (~/.cookiecutterrc).
type Config struct {
	DefaultContext   map[string]any    `mapstructure:"default_context"`
	CookiecuttersDir string            `mapstructure:"cookiecutters_dir"`
	ReplayDir        string            `mapstructure:"replay_dir"`
	Abbreviations    map[string]string `mapstructure:"abbreviations"`
}

// Default returns the built-in configuration rooted at home.
func Default(home string) *Config {
	return &Config{
		DefaultContext:   map[string]any{},
		CookiecuttersDir: filepath.Join(home, ".cookiecutters") + string(filepath.Separator),
		ReplayDir:        filepath.Join(home, ".cookiecutter_replay") + string(filepath.Separator),
		Abbreviations: map[string]string{
			"gh": "https://github.com/{0}.git",
			"gl": "https://gitlab.com/{0}.git",
			"bb": "https://bitbucket.org/{0}",
		},
	}
}
