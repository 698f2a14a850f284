// Package shell produces the one-line rc-file snippets that wire spry
// into a user's shell startup.
package shell

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/spry/pkg/paths"
)

// GetIntegrationSnippet returns the line to add to the user's rc file.
// When the generated hook script is already installed under the data
// dir, the snippet sources it; otherwise it falls back to generating
// the hook inline at shell startup.
func GetIntegrationSnippet(shell string, p *paths.Paths) string {
	scriptPath := p.HookScriptPath(shell)
	if _, err := os.Stat(scriptPath); err == nil {
		return fmt.Sprintf(`[ -f "%s" ] && source "%s"`, scriptPath, scriptPath)
	}
	return fmt.Sprintf(`eval "$(spry hook print %s)"`, shell)
}

// RCFileName returns the conventional rc file for a shell, relative to
// the user's home directory.
func RCFileName(shell string) string {
	switch shell {
	case "bash":
		return ".bashrc"
	case "zsh":
		return ".zshrc"
	default:
		return ""
	}
}

// RCFilePath returns the absolute rc file path for the shell, or ""
// when the shell is unknown or the home directory cannot be resolved.
func RCFilePath(shell string) string {
	name := RCFileName(shell)
	if name == "" {
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, name)
}
