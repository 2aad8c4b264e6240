package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryErrorFormat(t *testing.T) {
	err := &RepositoryError{Template: "https://example.com/t.git", Details: "Failed to clone the repo. fatal: not found\n"}
	assert.Equal(t, "Unable to initialize the cookiecutter using https://example.com/t.git! Failed to clone the repo. fatal: not found", err.Error())

	bare := &RepositoryError{Template: "DNE"}
	assert.Equal(t, "Unable to initialize the cookiecutter using DNE!", bare.Error())
}

func TestReplayErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("unexpected end of JSON input")
	err := &ReplayError{Path: "/tmp/replay.json", Details: "Failed to load the replay file.", Err: inner}

	assert.Contains(t, err.Error(), "/tmp/replay.json")
	assert.ErrorIs(t, err, inner)
}

func TestNewRenderErrorStripsPrefix(t *testing.T) {
	native := errors.New(`Error: "/out/project" directory already exists`)
	err := NewRenderError(native)

	assert.Equal(t, `"/out/project" directory already exists`, err.Error())
	assert.ErrorIs(t, err, native)
}

func TestStripGenericPrefix(t *testing.T) {
	assert.Equal(t, "boom", StripGenericPrefix("Error: boom"))
	assert.Equal(t, "boom", StripGenericPrefix("boom"))
	assert.Equal(t, "template Error: boom", StripGenericPrefix("template Error: boom"))
}

func TestConfigErrorAs(t *testing.T) {
	var wrapped error = fmt.Errorf("loading: %w", &ConfigError{Path: "rc.yaml", Err: errors.New("bad")})

	var cfgErr *ConfigError
	require.ErrorAs(t, wrapped, &cfgErr)
	assert.Equal(t, "rc.yaml", cfgErr.Path)
	assert.Equal(t, "invalid configuration rc.yaml: bad", cfgErr.Error())
}

func TestIOErrorFormat(t *testing.T) {
	inner := errors.New("permission denied")
	err := &IOError{Op: "recording project state in", Path: "/out/demo", Err: inner}
	assert.Equal(t, "recording project state in /out/demo: permission denied", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := &IOError{Op: "creating clone directory", Err: inner}
	assert.Equal(t, "creating clone directory: permission denied", bare.Error())
}
