package prompt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/spry/pkg/capability"
	"github.com/arthur-debert/spry/pkg/config"
	spryerrors "github.com/arthur-debert/spry/pkg/errors"
	"github.com/arthur-debert/spry/pkg/execx"
)

func detectorWith(tools ...string) *capability.Detector {
	present := make(map[string]bool)
	for _, tool := range tools {
		present[tool] = true
	}
	return capability.NewDetectorWithLookup(func(tool string) (string, error) {
		if present[tool] {
			return "/usr/bin/" + tool, nil
		}
		return "", errors.New("not found")
	})
}

func TestPlaceholder(t *testing.T) {
	got := Placeholder("")
	assert.Contains(t, got, "spry")
	assert.Contains(t, got, "❯")

	got = Placeholder("loading")
	assert.Contains(t, got, "loading")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "placeholder", StatePlaceholder.String())
	assert.Equal(t, "themed", StateThemed.String())
}

func TestEngineInit(t *testing.T) {
	fake := execx.NewFakeCommander().
		Respond("oh-my-posh init zsh", "PROMPT='themed'")

	e := NewEngine(fake, detectorWith("oh-my-posh"), config.Prompt{Engine: "oh-my-posh"})
	out, err := e.Init(context.Background(), "zsh")
	require.NoError(t, err)
	assert.Equal(t, "PROMPT='themed'", out)
}

func TestEngineInitWithTheme(t *testing.T) {
	theme := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(theme, []byte("blocks:\n  - type: prompt\n"), 0644))

	fake := execx.NewFakeCommander().
		Respond("oh-my-posh init zsh --config "+theme, "PROMPT='themed'")

	e := NewEngine(fake, detectorWith("oh-my-posh"), config.Prompt{Engine: "oh-my-posh", Theme: theme})
	_, err := e.Init(context.Background(), "zsh")
	assert.NoError(t, err)
}

func TestEngineInitMissingBinary(t *testing.T) {
	e := NewEngine(execx.NewFakeCommander(), detectorWith(), config.Prompt{Engine: "oh-my-posh"})
	assert.False(t, e.Available())

	_, err := e.Init(context.Background(), "zsh")
	assert.Equal(t, spryerrors.ErrToolMissing, spryerrors.GetErrorCode(err))
}

func TestValidateTheme(t *testing.T) {
	dir := t.TempDir()

	yamlTheme := filepath.Join(dir, "ok.yaml")
	require.NoError(t, os.WriteFile(yamlTheme, []byte("a: 1\n"), 0644))
	assert.NoError(t, ValidateTheme(yamlTheme))

	jsonTheme := filepath.Join(dir, "ok.json")
	require.NoError(t, os.WriteFile(jsonTheme, []byte(`{"a": 1}`), 0644))
	assert.NoError(t, ValidateTheme(jsonTheme))

	tomlTheme := filepath.Join(dir, "ok.toml")
	require.NoError(t, os.WriteFile(tomlTheme, []byte("a = 1\n"), 0644))
	assert.NoError(t, ValidateTheme(tomlTheme))

	badTheme := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(badTheme, []byte("not [valid"), 0644))
	assert.Error(t, ValidateTheme(badTheme))

	assert.Equal(t, spryerrors.ErrFileNotFound,
		spryerrors.GetErrorCode(ValidateTheme(filepath.Join(dir, "missing.yaml"))))
}
