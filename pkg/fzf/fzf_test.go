package fzf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/spry/pkg/capability"
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

func TestPick(t *testing.T) {
	fake := execx.NewFakeCommander().
		Respond("fzf --height 40% --reverse --prompt branch> ", "feature/x\n")

	p := NewPicker(fake, detectorWith("fzf"))
	got, err := p.Pick(context.Background(), []string{"main", "feature/x"}, "branch")
	require.NoError(t, err)
	assert.Equal(t, "feature/x", got)

	// Candidates were piped one per line
	assert.Equal(t, "main\nfeature/x\n", fake.Stdin["fzf --height 40% --reverse --prompt branch> "])
}

func TestPickCancelled(t *testing.T) {
	fake := execx.NewFakeCommander().
		Respond("fzf --height 40% --reverse", "")

	p := NewPicker(fake, detectorWith("fzf"))
	_, err := p.Pick(context.Background(), []string{"a"}, "")
	assert.Equal(t, spryerrors.ErrCancelled, spryerrors.GetErrorCode(err))
}

func TestPickFzfExitsNonZero(t *testing.T) {
	fake := execx.NewFakeCommander().
		Fail("fzf --height 40% --reverse", assert.AnError)

	p := NewPicker(fake, detectorWith("fzf"))
	_, err := p.Pick(context.Background(), []string{"a"}, "")
	assert.Equal(t, spryerrors.ErrCancelled, spryerrors.GetErrorCode(err))
}

func TestPickMissingFzf(t *testing.T) {
	p := NewPicker(execx.NewFakeCommander(), detectorWith())
	_, err := p.Pick(context.Background(), []string{"a"}, "")
	assert.Equal(t, spryerrors.ErrToolMissing, spryerrors.GetErrorCode(err))
}

func TestPickNoCandidates(t *testing.T) {
	p := NewPicker(execx.NewFakeCommander(), detectorWith("fzf"))
	_, err := p.Pick(context.Background(), nil, "")
	assert.Equal(t, spryerrors.ErrInvalidInput, spryerrors.GetErrorCode(err))
}
