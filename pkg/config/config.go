// Package config loads spry's layered configuration: embedded defaults,
// the user's spry.toml from the XDG config directory, and a small set of
// SPRY_* environment variable overrides, in that order of precedence.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/spry/pkg/errors"
)

// ConfigFileName is the user configuration file looked up under the
// spry XDG config directory.
const ConfigFileName = "spry.toml"

// Prompt holds prompt-engine configuration
type Prompt struct {
	// Engine is the external prompt engine binary, e.g. "oh-my-posh"
	Engine string `koanf:"engine" toml:"engine"`
	// Theme is the path to the engine's theme config; empty means the
	// engine's own default
	Theme string `koanf:"theme" toml:"theme"`
	// Placeholder is the text shown by the placeholder prompt until the
	// deferred phase installs the themed one
	Placeholder string `koanf:"placeholder" toml:"placeholder"`
	// EarlyInit attempts a synchronous theme init when the engine binary
	// is already on PATH, avoiding the placeholder-to-themed flash
	EarlyInit bool `koanf:"early_init" toml:"early_init"`
}

// History holds history redaction configuration
type History struct {
	Filter   bool     `koanf:"filter" toml:"filter"`
	DenyList []string `koanf:"deny_list" toml:"deny_list"`
}

// Completions holds argument-completion configuration
type Completions struct {
	Enabled       bool     `koanf:"enabled" toml:"enabled"`
	MinWordLength int      `koanf:"min_word_length" toml:"min_word_length"`
	Tools         []string `koanf:"tools" toml:"tools"`
}

// Hooks toggles per-tool shell integration hooks
type Hooks struct {
	Zoxide bool `koanf:"zoxide" toml:"zoxide"`
	Direnv bool `koanf:"direnv" toml:"direnv"`
	Fnm    bool `koanf:"fnm" toml:"fnm"`
}

// Tools holds external-tool policy
type Tools struct {
	AutoInstall bool `koanf:"auto_install" toml:"auto_install"`
}

// Git holds git maintenance configuration
type Git struct {
	DefaultRemote     string   `koanf:"default_remote" toml:"default_remote"`
	ProtectedBranches []string `koanf:"protected_branches" toml:"protected_branches"`
}

// Config is the main configuration structure
type Config struct {
	Prompt      Prompt      `koanf:"prompt" toml:"prompt"`
	History     History     `koanf:"history" toml:"history"`
	Completions Completions `koanf:"completions" toml:"completions"`
	Hooks       Hooks       `koanf:"hooks" toml:"hooks"`
	Tools       Tools       `koanf:"tools" toml:"tools"`
	Git         Git         `koanf:"git" toml:"git"`
}

// envKeyMap is the documented SPRY_* environment variable surface.
// Anything not listed here is ignored rather than guessed at.
var envKeyMap = map[string]string{
	"SPRY_PROMPT_ENGINE":  "prompt.engine",
	"SPRY_THEME":          "prompt.theme",
	"SPRY_EARLY_INIT":     "prompt.early_init",
	"SPRY_AUTO_INSTALL":   "tools.auto_install",
	"SPRY_COMPLETIONS":    "completions.enabled",
	"SPRY_HISTORY_FILTER": "history.filter",
}

// Load builds the effective configuration. configDir overrides the XDG
// config directory lookup when non-empty (used by tests).
func Load(configDir string) (*Config, error) {
	k, err := loadKoanf(configDir)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// loadKoanf layers defaults, user file and env overrides
func loadKoanf(configDir string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	// 2. User config file, if present
	path := UserConfigPath(configDir)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
	}

	// 3. Environment overrides
	if err := k.Load(env.Provider("SPRY_", ".", func(s string) string {
		return envKeyMap[s]
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	return k, nil
}

// UserConfigPath returns the path of the user configuration file.
// configDir overrides the XDG lookup when non-empty.
func UserConfigPath(configDir string) string {
	if configDir == "" {
		configDir = filepath.Join(xdg.ConfigHome, "spry")
	}
	return filepath.Join(configDir, ConfigFileName)
}

// Default returns the built-in configuration without user or env overlays
func Default() *Config {
	k := koanf.New(".")
	var cfg Config
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err == nil {
		_ = k.Unmarshal("", &cfg)
	}
	return &cfg
}
