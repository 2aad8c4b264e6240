package config

import (
	"os"
	"path/filepath"
)

// UserConfigName is the user config file looked up in the home directory.
const UserConfigName = ".cookiecutterrc"

// Source says where the effective configuration came from.
type Source string

const (
	SourceDefaults Source = "defaults"
	SourceFlag     Source = "flag"
	SourceEnv      Source = "env"
	SourceHome     Source = "home"
)

// Discover picks the config file to load. An empty path means the built-in
// defaults apply. Paths from the flag or the environment must exist; the
// home file is used only when present.
func Discover(opts LoadOptions, home string) (string, Source) {
	switch {
	case opts.UseDefault:
		return "", SourceDefaults
	case opts.Path != "":
		return opts.Path, SourceFlag
	case opts.Env.ConfigFile != "":
		return opts.Env.ConfigFile, SourceEnv
	}
	if home == "" {
		return "", SourceDefaults
	}
	p := filepath.Join(home, UserConfigName)
	if _, err := os.Stat(p); err == nil {
		return p, SourceHome
	}
	return "", SourceDefaults
}
