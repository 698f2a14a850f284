// Package capability detects which optional external tools are available.
// Detection happens once per session and is memoized: the startup scheduler
// and every leaf utility consult the same Detector instead of probing PATH
// ad hoc.
package capability

import (
	"os/exec"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/spry/pkg/logging"
)

// Known tool names probed by spry. Callers may probe arbitrary names;
// these constants just keep call sites typo-free.
const (
	ToolGit      = "git"
	ToolFzf      = "fzf"
	ToolKubectl  = "kubectl"
	ToolDocker   = "docker"
	ToolAz       = "az"
	ToolDotnet   = "dotnet"
	ToolZoxide   = "zoxide"
	ToolDirenv   = "direnv"
	ToolFnm      = "fnm"
	ToolOhMyPosh = "oh-my-posh"
)

// Detector memoizes executable lookups for the lifetime of a session.
type Detector struct {
	mu       sync.Mutex
	results  map[string]string
	lookPath func(string) (string, error)
	logger   zerolog.Logger
}

// NewDetector returns a Detector backed by exec.LookPath.
func NewDetector() *Detector {
	return NewDetectorWithLookup(exec.LookPath)
}

// NewDetectorWithLookup returns a Detector with an injected lookup,
// used by tests to simulate present and absent tools.
func NewDetectorWithLookup(lookPath func(string) (string, error)) *Detector {
	return &Detector{
		results:  make(map[string]string),
		lookPath: lookPath,
		logger:   logging.GetLogger("capability"),
	}
}

// Has reports whether the named tool resolves on PATH.
func (d *Detector) Has(tool string) bool {
	return d.Path(tool) != ""
}

// Path returns the resolved path of the tool, or "" if absent.
// The first lookup per tool is cached for the session.
func (d *Detector) Path(tool string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if path, ok := d.results[tool]; ok {
		return path
	}

	path, err := d.lookPath(tool)
	if err != nil {
		// Missing tools are a detected precondition, not an error
		d.logger.Debug().Str("tool", tool).Msg("Tool not found on PATH")
		path = ""
	}
	d.results[tool] = path
	return path
}

// Known returns the sorted list of tools probed so far and their presence.
func (d *Detector) Known() map[string]bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[string]bool, len(d.results))
	for tool, path := range d.results {
		out[tool] = path != ""
	}
	return out
}

// AllTools lists every tool spry knows how to integrate with, sorted.
func AllTools() []string {
	tools := []string{
		ToolGit, ToolFzf, ToolKubectl, ToolDocker, ToolAz,
		ToolDotnet, ToolZoxide, ToolDirenv, ToolFnm, ToolOhMyPosh,
	}
	sort.Strings(tools)
	return tools
}
