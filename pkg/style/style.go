// Package style centralizes terminal styling for spry's human-facing
// output.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Status types for tool availability reporting
type Status string

const (
	StatusPresent  Status = "present"
	StatusAbsent   Status = "absent"
	StatusDisabled Status = "disabled"
)

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusPresent:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusAbsent:
		return pterm.NewStyle(pterm.FgRed)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Glyph returns the status marker shown in the status table
func Glyph(status Status) string {
	switch status {
	case StatusPresent:
		return "✓"
	case StatusAbsent:
		return "✗"
	default:
		return "-"
	}
}

// ErrorStyle renders fatal errors in the CLI entry point
var ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

// TitleStyle renders section headings
var TitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
