// Package completions bridges shell completion requests to the external
// CLIs that can answer them. Each completer is registered only when its
// binary is present, and every completer refuses to call out for inputs
// that are too short to be worth an external process.
package completions

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/spry/pkg/capability"
	"github.com/arthur-debert/spry/pkg/logging"
)

// Completer produces candidate completions for one external tool.
type Completer interface {
	// Tool is the binary this completer serves.
	Tool() string

	// Complete returns candidates for the given command words. words
	// excludes the tool name itself; the last word is the partial one
	// being completed (possibly empty).
	Complete(ctx context.Context, words []string) ([]string, error)
}

// Registry holds the session's active completers.
type Registry struct {
	completers    map[string]Completer
	detector      *capability.Detector
	minWordLength int
	logger        zerolog.Logger
}

// NewRegistry returns an empty registry. minWordLength guards external
// calls: shorter partial words complete to nothing, instantly.
func NewRegistry(detector *capability.Detector, minWordLength int) *Registry {
	return &Registry{
		completers:    make(map[string]Completer),
		detector:      detector,
		minWordLength: minWordLength,
		logger:        logging.GetLogger("completions"),
	}
}

// Register adds a completer if its tool is installed. Absent tools are
// skipped silently; that is a detected precondition, not an error.
func (r *Registry) Register(c Completer) {
	if !r.detector.Has(c.Tool()) {
		r.logger.Debug().Str("tool", c.Tool()).Msg("Completer skipped, tool not installed")
		return
	}
	r.completers[c.Tool()] = c
}

// Tools returns the tools with an active completer, sorted so callers
// emitting shell code produce it in a stable order.
func (r *Registry) Tools() []string {
	tools := make([]string, 0, len(r.completers))
	for tool := range r.completers {
		tools = append(tools, tool)
	}
	sort.Strings(tools)
	return tools
}

// Complete answers one completion request. It never blocks the shell on
// bad input: unknown tools and too-short partial words return no
// candidates immediately, and completer failures degrade to none.
func (r *Registry) Complete(ctx context.Context, tool string, words []string) []string {
	c, ok := r.completers[tool]
	if !ok {
		return nil
	}

	partial := ""
	if len(words) > 0 {
		partial = words[len(words)-1]
	}
	// An empty partial is as too-short as it gets: completing a blank
	// word would spawn the external tool for every bare <TAB>. The one
	// exception is a blank word right after a flag, where the request
	// is for that flag's value (dotnet -f <TAB>).
	if len(words) == 0 {
		return nil
	}
	if partial == "" && !flagValuePosition(words) {
		return nil
	}
	if partial != "" && len(partial) < r.minWordLength && !strings.HasPrefix(partial, "-") {
		return nil
	}

	candidates, err := c.Complete(ctx, words)
	if err != nil {
		r.logger.Debug().Err(err).Str("tool", tool).Msg("Completion failed")
		return nil
	}
	return candidates
}

// flagValuePosition reports whether the trailing blank word completes
// the value of the flag before it.
func flagValuePosition(words []string) bool {
	return len(words) >= 2 && strings.HasPrefix(words[len(words)-2], "-")
}
