package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christokur/cruft/internal/errs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefault(t *testing.T) {
	cfg := Default("/home/jane")
	assert.Equal(t, filepath.Join("/home/jane", ".cookiecutters")+string(filepath.Separator), cfg.CookiecuttersDir)
	assert.Equal(t, filepath.Join("/home/jane", ".cookiecutter_replay")+string(filepath.Separator), cfg.ReplayDir)
	assert.Empty(t, cfg.DefaultContext)
	assert.Contains(t, cfg.Abbreviations, "gh")
	assert.Contains(t, cfg.Abbreviations, "gl")
	assert.Contains(t, cfg.Abbreviations, "bb")
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")
	writeFile(t, path, `
default_context:
  full_name: Jane Doe
  email: jane@example.com
replay_dir: ~/replays/
abbreviations:
  corp: https://git.example.com/{0}.git
`)

	cfg, err := LoadFile(path, home)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"full_name": "Jane Doe", "email": "jane@example.com"}, cfg.DefaultContext)
	assert.Equal(t, filepath.Join(home, "replays")+string(filepath.Separator), cfg.ReplayDir)
	assert.Equal(t, Default(home).CookiecuttersDir, cfg.CookiecuttersDir)
	assert.Equal(t, "https://git.example.com/{0}.git", cfg.Abbreviations["corp"])
	assert.Equal(t, "https://github.com/{0}.git", cfg.Abbreviations["gh"])
}

func TestLoadFileErrors(t *testing.T) {
	home := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed", "default_context: [unclosed", "parsing config"},
		{"sequence", "- a\n- b\n", "parsing config"},
		{"empty", "", "must be a mapping"},
		{"wrong type", "default_context: 3\n", "decoding config"},
		{"empty replay dir", "replay_dir: \"\"\n", "'replay_dir' must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(home, tt.name+".yaml")
			writeFile(t, path, tt.content)

			_, err := LoadFile(path, home)
			var cfgErr *errs.ConfigError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, path, cfgErr.Path)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{Path: filepath.Join(t.TempDir(), "nope.yaml"), Home: t.TempDir()})
	var cfgErr *errs.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestLoadSelection(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, UserConfigName), "replay_dir: /from/home\n")
	flagPath := filepath.Join(home, "flag.yaml")
	writeFile(t, flagPath, "replay_dir: /from/flag\n")
	envPath := filepath.Join(home, "env.yaml")
	writeFile(t, envPath, "replay_dir: /from/env\n")

	tests := []struct {
		name string
		opts LoadOptions
		want string
	}{
		{"home file", LoadOptions{}, "/from/home"},
		{"env beats home", LoadOptions{Env: Env{ConfigFile: envPath}}, "/from/env"},
		{"flag beats env", LoadOptions{Path: flagPath, Env: Env{ConfigFile: envPath}}, "/from/flag"},
		{"default beats all", LoadOptions{UseDefault: true, Path: flagPath}, Default(home).ReplayDir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Home = home
			cfg, err := Load(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.ReplayDir)
		})
	}
}

func TestLoadWithoutHomeFile(t *testing.T) {
	home := t.TempDir()
	cfg, err := Load(LoadOptions{Home: home})
	require.NoError(t, err)
	assert.Equal(t, Default(home), cfg)
}

func TestDiscoverSource(t *testing.T) {
	home := t.TempDir()
	_, src := Discover(LoadOptions{}, home)
	assert.Equal(t, SourceDefaults, src)

	writeFile(t, filepath.Join(home, UserConfigName), "{}\n")
	p, src := Discover(LoadOptions{}, home)
	assert.Equal(t, SourceHome, src)
	assert.Equal(t, filepath.Join(home, UserConfigName), p)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("CRUFT_TEST_DIR", "/var/data")
	assert.Equal(t, "/var/data/replay", expandPath("$CRUFT_TEST_DIR/replay", "/home/jane"))
	assert.Equal(t, "/home/jane", expandPath("~", "/home/jane"))
	assert.Equal(t, filepath.Join("/home/jane", "x"), expandPath("~/x", "/home/jane"))
	assert.Equal(t, "relative", expandPath("relative", "/home/jane"))
}
