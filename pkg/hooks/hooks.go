// Package hooks generates the per-shell integration scripts that drive
// spry's two-phase startup from inside the user's shell, and emits the
// init code for optional third-party shell integrations.
package hooks

import (
	"context"
	"strings"
	"text/template"

	"github.com/arthur-debert/spry/pkg/capability"
	"github.com/arthur-debert/spry/pkg/config"
	"github.com/arthur-debert/spry/pkg/errors"
	"github.com/arthur-debert/spry/pkg/execx"
	"github.com/arthur-debert/spry/pkg/prompt"
)

// SupportedShells are the shells spry can generate hooks for.
var SupportedShells = []string{"zsh", "bash"}

// Generator renders hook scripts for one spry installation.
type Generator struct {
	cfg        *config.Config
	binaryPath string
}

// NewGenerator returns a Generator. binaryPath is the resolved spry
// binary the generated script will call back into.
func NewGenerator(cfg *config.Config, binaryPath string) *Generator {
	return &Generator{cfg: cfg, binaryPath: binaryPath}
}

type templateData struct {
	Binary            string
	PlaceholderPrompt string
	ConfigPath        string
	HistoryFilter     bool
}

var templateFuncs = template.FuncMap{
	"shellQuote": shellQuote,
}

// Script renders the hook script for the given shell.
func (g *Generator) Script(shell string) (string, error) {
	var raw string
	switch shell {
	case "zsh":
		raw = zshHookTemplate
	case "bash":
		raw = bashHookTemplate
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unsupported shell: %s", shell)
	}

	tmpl, err := template.New(shell).Funcs(templateFuncs).Parse(raw)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "bad %s hook template", shell)
	}

	var buf strings.Builder
	data := templateData{
		Binary:            g.binaryPath,
		PlaceholderPrompt: prompt.Placeholder(g.cfg.Prompt.Placeholder),
		ConfigPath:        config.UserConfigPath(""),
		HistoryFilter:     g.cfg.History.Filter,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to render %s hook", shell)
	}
	return buf.String(), nil
}

// shellQuote single-quotes s for safe embedding in shell source.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ToolHook is one optional third-party shell integration: a tool that
// emits its own init code when asked.
type ToolHook struct {
	Tool  string
	Label string
	args  func(shell string) []string
}

// toolHooks lists the integrations spry knows how to activate. Each is
// emitted only when its binary is detected and its config toggle is on.
func toolHooks(cfg config.Hooks) []ToolHook {
	var hooks []ToolHook
	if cfg.Zoxide {
		hooks = append(hooks, ToolHook{
			Tool:  capability.ToolZoxide,
			Label: "zoxide init",
			args:  func(shell string) []string { return []string{"init", shell} },
		})
	}
	if cfg.Direnv {
		hooks = append(hooks, ToolHook{
			Tool:  capability.ToolDirenv,
			Label: "direnv hook",
			args:  func(shell string) []string { return []string{"hook", shell} },
		})
	}
	if cfg.Fnm {
		hooks = append(hooks, ToolHook{
			Tool:  capability.ToolFnm,
			Label: "fnm env",
			args:  func(shell string) []string { return []string{"env", "--use-on-cd", "--shell", shell} },
		})
	}
	return hooks
}

// ToolHookCode runs every enabled, installed integration tool and
// returns the shell code each emitted. A failing tool contributes
// nothing; the error is the caller's to log.
func ToolHookCode(ctx context.Context, cmd execx.Commander, detector *capability.Detector, cfg config.Hooks, shell string) ([]string, []error) {
	var snippets []string
	var errs []error
	for _, hook := range toolHooks(cfg) {
		if !detector.Has(hook.Tool) {
			continue
		}
		out, err := cmd.Run(ctx, hook.Tool, hook.args(shell)...)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, errors.ErrToolFailed, "%s failed", hook.Label))
			continue
		}
		snippets = append(snippets, string(out))
	}
	return snippets, errs
}
