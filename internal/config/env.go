package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the environment settings cruft honours. It is read once by the
// CLI and passed down; components never consult the process environment.
type Env struct {
	// ConfigFile is the user config path from COOKIECUTTER_CONFIG.
	ConfigFile string `env:"COOKIECUTTER_CONFIG"`
	// LogLevel is the log level from CRUFT_LOG_LEVEL.
	LogLevel string `env:"CRUFT_LOG_LEVEL" envDefault:"info"`
	// NoInput disables prompting when CRUFT_NO_INPUT is true.
	NoInput bool `env:"CRUFT_NO_INPUT"`
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("reading environment: %w", err)
	}
	return e, nil
}

// EnvFromMap reads Env from vars instead of the process environment.
func EnvFromMap(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("reading environment: %w", err)
	}
	return e, nil
}
