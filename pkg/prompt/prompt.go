// Package prompt renders the cheap placeholder prompt and drives the
// external prompt engine that owns the themed one.
//
// The placeholder exists only to bridge the gap until the deferred phase
// finishes, so it must not invoke any external process.
package prompt

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// State identifies which prompt implementation is installed.
type State int

const (
	// StatePlaceholder is the cheap loading prompt.
	StatePlaceholder State = iota
	// StateThemed is the final engine-rendered prompt.
	StateThemed
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == StateThemed {
		return "themed"
	}
	return "placeholder"
}

var placeholderStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "117"}).
	Bold(true)

// Placeholder renders the placeholder prompt string. On terminals
// without color support it degrades to plain text.
func Placeholder(text string) string {
	if text == "" {
		text = "spry"
	}
	if termenv.EnvColorProfile() == termenv.Ascii {
		return text + " ❯ "
	}
	return placeholderStyle.Render(text) + " ❯ "
}
