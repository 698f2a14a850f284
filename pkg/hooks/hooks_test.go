package hooks

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/spry/pkg/capability"
	"github.com/arthur-debert/spry/pkg/config"
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

func TestGeneratorZsh(t *testing.T) {
	g := NewGenerator(config.Default(), "/usr/local/bin/spry")
	script, err := g.Script("zsh")
	require.NoError(t, err)

	assert.Contains(t, script, "add-zsh-hook precmd _spry_run_deferred")
	assert.Contains(t, script, "/usr/local/bin/spry init deferred --shell zsh")
	assert.Contains(t, script, "zle reset-prompt")
	// History filter is on by default
	assert.Contains(t, script, "add-zsh-hook zshaddhistory _spry_history_check")
	// Deferred runs are guarded shell-side too
	assert.Contains(t, script, "(( _spry_deferred_done )) && return")
	// Sync-phase helpers are baked in, no extra process spawns
	assert.Contains(t, script, "alias ..=")
	assert.Contains(t, script, "spry-edit-profile")
	assert.Contains(t, script, config.UserConfigPath(""))
}

func TestGeneratorBash(t *testing.T) {
	g := NewGenerator(config.Default(), "/usr/local/bin/spry")
	script, err := g.Script("bash")
	require.NoError(t, err)

	assert.Contains(t, script, "PROMPT_COMMAND=")
	assert.Contains(t, script, "/usr/local/bin/spry init deferred --shell bash")
}

func TestGeneratorHistoryFilterDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.History.Filter = false

	g := NewGenerator(cfg, "/bin/spry")
	script, err := g.Script("zsh")
	require.NoError(t, err)

	assert.NotContains(t, script, "history check")
}

// The generated scripts must survive the target shell's parser, not
// just contain the right substrings. bash in particular rejects a
// brace group whose closing } shares a line with the last command
// unless that command is terminated with ;.
func TestGeneratorScriptsParse(t *testing.T) {
	for _, sh := range SupportedShells {
		t.Run(sh, func(t *testing.T) {
			if _, err := exec.LookPath(sh); err != nil {
				t.Skipf("%s not installed", sh)
			}

			g := NewGenerator(config.Default(), "/usr/local/bin/spry")
			script, err := g.Script(sh)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "hook."+sh)
			require.NoError(t, os.WriteFile(path, []byte(script), 0o644))

			out, err := exec.Command(sh, "-n", path).CombinedOutput()
			assert.NoError(t, err, "%s rejected the script:\n%s", sh, out)
		})
	}
}

func TestGeneratorUnsupportedShell(t *testing.T) {
	g := NewGenerator(config.Default(), "/bin/spry")
	_, err := g.Script("fish")
	assert.Error(t, err)
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "'plain'", shellQuote("plain"))
	assert.Equal(t, `'it'\''s'`, shellQuote("it's"))
}

func TestToolHookCode(t *testing.T) {
	fake := execx.NewFakeCommander().
		Respond("zoxide init zsh", "function z() { ... }").
		Respond("direnv hook zsh", "_direnv_hook() { ... }")

	cfg := config.Hooks{Zoxide: true, Direnv: true, Fnm: true}
	snippets, errs := ToolHookCode(context.Background(), fake, detectorWith("zoxide", "direnv"), cfg, "zsh")

	assert.Empty(t, errs)
	assert.Equal(t, []string{"function z() { ... }", "_direnv_hook() { ... }"}, snippets)
	// fnm is enabled but not installed: no call, no error
	assert.Equal(t, 0, fake.CallCount("fnm"))
}

func TestToolHookCodeDisabledToolsSkipped(t *testing.T) {
	fake := execx.NewFakeCommander()
	cfg := config.Hooks{Zoxide: false, Direnv: false, Fnm: false}

	snippets, errs := ToolHookCode(context.Background(), fake, detectorWith("zoxide", "direnv", "fnm"), cfg, "zsh")
	assert.Empty(t, snippets)
	assert.Empty(t, errs)
	assert.Empty(t, fake.Calls)
}

func TestToolHookCodeFailureIsCollected(t *testing.T) {
	fake := execx.NewFakeCommander().
		Fail("zoxide init zsh", assert.AnError).
		Respond("direnv hook zsh", "hooked")

	cfg := config.Hooks{Zoxide: true, Direnv: true}
	snippets, errs := ToolHookCode(context.Background(), fake, detectorWith("zoxide", "direnv"), cfg, "zsh")

	assert.Len(t, errs, 1)
	assert.Equal(t, []string{"hooked"}, snippets, "one broken tool must not block the others")
}

func TestInstaller(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hooks")

	i := NewInstaller()
	err := i.Install(dir, map[string]string{
		"spry-init.zsh":  "# zsh hook\n",
		"spry-init.bash": "# bash hook\n",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "spry-init.zsh"))
	require.NoError(t, err)
	assert.Equal(t, "# zsh hook\n", string(data))

	_, err = os.Stat(filepath.Join(dir, "spry-init.bash"))
	assert.NoError(t, err)
}

func TestInstallerNothingToDo(t *testing.T) {
	i := NewInstaller()
	assert.NoError(t, i.Install(t.TempDir(), nil))
}
