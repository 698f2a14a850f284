package kube

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

func TestPickContext(t *testing.T) {
	fake := execx.NewFakeCommander().
		Respond("kubectl config get-contexts -o name", "dev\nstaging\nprod\n").
		Respond("fzf --height 40% --reverse --prompt context> ", "staging\n").
		Respond("kubectl config use-context staging", "")

	c := NewClient(fake, detectorWith("kubectl", "fzf"))
	got, err := c.PickContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "staging", got)
	assert.Equal(t, 1, fake.CallCount("kubectl config use-context staging"))
}

func TestPickContextCancelDoesNotSwitch(t *testing.T) {
	fake := execx.NewFakeCommander().
		Respond("kubectl config get-contexts -o name", "dev\nprod\n").
		Respond("fzf --height 40% --reverse --prompt context> ", "")

	c := NewClient(fake, detectorWith("kubectl", "fzf"))
	_, err := c.PickContext(context.Background())
	assert.Equal(t, spryerrors.ErrCancelled, spryerrors.GetErrorCode(err))
	assert.Equal(t, 0, fake.CallCount("kubectl config use-context"))
}

func TestPickNamespace(t *testing.T) {
	fake := execx.NewFakeCommander().
		Respond("kubectl get namespaces -o jsonpath={.items[*].metadata.name}", "default kube-system app").
		Respond("fzf --height 40% --reverse --prompt namespace> ", "app\n").
		Respond("kubectl config set-context --current --namespace=app", "")

	c := NewClient(fake, detectorWith("kubectl", "fzf"))
	got, err := c.PickNamespace(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "app", got)
}

func TestMissingKubectl(t *testing.T) {
	c := NewClient(execx.NewFakeCommander(), detectorWith("fzf"))
	_, err := c.Contexts(context.Background())
	assert.Equal(t, spryerrors.ErrToolMissing, spryerrors.GetErrorCode(err))
}
