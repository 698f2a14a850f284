// Package fzf wraps the external fuzzy finder used by the interactive
// pickers. Candidates are piped to fzf's stdin; the chosen line comes
// back on stdout, and an empty result means the user cancelled.
package fzf

import (
	"context"
	"strings"

	"github.com/arthur-debert/spry/pkg/capability"
	"github.com/arthur-debert/spry/pkg/errors"
	"github.com/arthur-debert/spry/pkg/execx"
)

// Picker resolves a single selection from candidate strings.
type Picker struct {
	cmd      execx.Commander
	detector *capability.Detector
}

// NewPicker returns a Picker. The detector gates on fzf being installed.
func NewPicker(cmd execx.Commander, detector *capability.Detector) *Picker {
	return &Picker{cmd: cmd, detector: detector}
}

// Pick shows the candidates in fzf and returns the selected line.
// Returns ErrToolMissing when fzf is not installed, ErrCancelled when the
// user dismissed the picker, and ErrInvalidInput for an empty candidate set.
func (p *Picker) Pick(ctx context.Context, candidates []string, prompt string) (string, error) {
	if !p.detector.Has(capability.ToolFzf) {
		return "", errors.New(errors.ErrToolMissing, "fzf is not installed")
	}
	if len(candidates) == 0 {
		return "", errors.New(errors.ErrInvalidInput, "nothing to pick from")
	}

	args := []string{"--height", "40%", "--reverse"}
	if prompt != "" {
		args = append(args, "--prompt", prompt+"> ")
	}

	out, err := p.cmd.RunInput(ctx, strings.Join(candidates, "\n")+"\n", "fzf", args...)
	selection := strings.TrimSpace(string(out))
	if err != nil || selection == "" {
		// fzf exits non-zero on escape; either way nothing was chosen
		return "", errors.New(errors.ErrCancelled, "selection cancelled")
	}
	return selection, nil
}
