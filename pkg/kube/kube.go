// Package kube wraps kubectl for the interactive context and namespace
// pickers.
package kube

import (
	"context"
	"strings"

	"github.com/arthur-debert/spry/pkg/capability"
	"github.com/arthur-debert/spry/pkg/errors"
	"github.com/arthur-debert/spry/pkg/execx"
	"github.com/arthur-debert/spry/pkg/fzf"
)

// Client runs kubectl operations and resolves selections via fzf.
type Client struct {
	cmd      execx.Commander
	detector *capability.Detector
	picker   *fzf.Picker
}

// NewClient returns a kube client.
func NewClient(cmd execx.Commander, detector *capability.Detector) *Client {
	return &Client{
		cmd:      cmd,
		detector: detector,
		picker:   fzf.NewPicker(cmd, detector),
	}
}

func (c *Client) requireKubectl() error {
	if !c.detector.Has(capability.ToolKubectl) {
		return errors.New(errors.ErrToolMissing, "kubectl is not installed")
	}
	return nil
}

// Contexts lists the configured kube contexts.
func (c *Client) Contexts(ctx context.Context) ([]string, error) {
	if err := c.requireKubectl(); err != nil {
		return nil, err
	}
	out, err := c.cmd.Run(ctx, "kubectl", "config", "get-contexts", "-o", "name")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrToolFailed, "failed to list contexts")
	}
	return splitLines(out), nil
}

// UseContext switches the active kube context.
func (c *Client) UseContext(ctx context.Context, name string) error {
	if _, err := c.cmd.Run(ctx, "kubectl", "config", "use-context", name); err != nil {
		return errors.Wrapf(err, errors.ErrToolFailed, "failed to switch context to %s", name)
	}
	return nil
}

// PickContext shows the contexts in fzf and switches to the selection.
func (c *Client) PickContext(ctx context.Context) (string, error) {
	contexts, err := c.Contexts(ctx)
	if err != nil {
		return "", err
	}
	selected, err := c.picker.Pick(ctx, contexts, "context")
	if err != nil {
		return "", err
	}
	return selected, c.UseContext(ctx, selected)
}

// Namespaces lists namespaces in the current context.
func (c *Client) Namespaces(ctx context.Context) ([]string, error) {
	if err := c.requireKubectl(); err != nil {
		return nil, err
	}
	out, err := c.cmd.Run(ctx, "kubectl", "get", "namespaces", "-o", "jsonpath={.items[*].metadata.name}")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrToolFailed, "failed to list namespaces")
	}
	return strings.Fields(string(out)), nil
}

// UseNamespace sets the default namespace on the current context.
func (c *Client) UseNamespace(ctx context.Context, name string) error {
	if _, err := c.cmd.Run(ctx, "kubectl", "config", "set-context", "--current", "--namespace="+name); err != nil {
		return errors.Wrapf(err, errors.ErrToolFailed, "failed to set namespace to %s", name)
	}
	return nil
}

// PickNamespace shows the namespaces in fzf and switches to the selection.
func (c *Client) PickNamespace(ctx context.Context) (string, error) {
	namespaces, err := c.Namespaces(ctx)
	if err != nil {
		return "", err
	}
	selected, err := c.picker.Pick(ctx, namespaces, "namespace")
	if err != nil {
		return "", err
	}
	return selected, c.UseNamespace(ctx, selected)
}

func splitLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
