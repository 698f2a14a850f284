// Package paths provides centralized path handling for spry.
// It implements XDG Base Directory specification compliance and resolves
// the binary's own install location, following symlinks, since spry is
// commonly symlinked into a bin directory by package managers.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/spry/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for spry
	EnvConfigDir = "SPRY_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for spry
	EnvDataDir = "SPRY_DATA_DIR"
)

// Directory and file names under the spry data dir. These are internal
// structure, not user-configurable.
const (
	AppDirName = "spry"

	// HooksDir is the subdirectory for generated shell hook scripts
	HooksDir = "hooks"

	// LogFileName is the name of the log file
	LogFileName = "spry.log"
)

// Paths provides centralized path management for spry
type Paths struct {
	execPath  string
	configDir string
	dataDir   string
	stateDir  string
}

// New resolves all paths. Failure to resolve the executable's own
// location is fatal: the synchronous phase cannot proceed without it.
func New() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrProfilePath, "cannot resolve own executable path")
	}
	// The installed binary is typically a symlink; resolve it so that
	// sibling resources are found next to the real file.
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrProfilePath, "cannot resolve symlink for %s", exe)
	}

	p := &Paths{execPath: resolved}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = dir
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		p.dataDir = dir
	} else {
		p.dataDir = filepath.Join(xdg.DataHome, AppDirName)
	}

	p.stateDir = filepath.Join(xdg.StateHome, AppDirName)

	return p, nil
}

// ExecPath returns the resolved path of the spry binary
func (p *Paths) ExecPath() string {
	return p.execPath
}

// ConfigDir returns the spry config directory
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// DataDir returns the spry data directory
func (p *Paths) DataDir() string {
	return p.dataDir
}

// StateDir returns the spry state directory
func (p *Paths) StateDir() string {
	return p.stateDir
}

// HooksPath returns the directory generated hook scripts are written to
func (p *Paths) HooksPath() string {
	return filepath.Join(p.dataDir, HooksDir)
}

// HookScriptPath returns the path of the hook script for a shell
func (p *Paths) HookScriptPath(shell string) string {
	return filepath.Join(p.HooksPath(), "spry-init."+shell)
}

// LogFilePath returns the path of the log file
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}
