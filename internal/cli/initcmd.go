package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/spry/pkg/completions"
	"github.com/arthur-debert/spry/pkg/errors"
	"github.com/arthur-debert/spry/pkg/hooks"
	"github.com/arthur-debert/spry/pkg/logging"
	"github.com/arthur-debert/spry/pkg/prompt"
	"github.com/arthur-debert/spry/pkg/scheduler"
)

// themedEnvVar is exported by the synchronous phase when the themed
// prompt was already installed, so the deferred phase skips theme init.
const themedEnvVar = "_SPRY_THEMED"

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <shell>",
		Short: "Print the shell startup code",
		Long: `Init runs the synchronous startup phase and prints the integration
script for the given shell. The script paints a lightweight placeholder
prompt, defines the always-available aliases and functions, and arms a
one-shot idle callback that runs the deferred phase before the next
prompt is drawn.

A failure here is fatal: a broken config should abort shell setup
loudly rather than produce a half-initialized session.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: hooks.SupportedShells,
		Example: `  # In ~/.zshrc
  eval "$(spry init zsh)"

  # In ~/.bashrc
  eval "$(spry init bash)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	cmd.AddCommand(newInitDeferredCmd())
	return cmd
}

func runInit(ctx context.Context, out io.Writer, shell string) error {
	if !isSupportedShell(shell) {
		return errors.Newf(errors.ErrInvalidInput, "unsupported shell: %s", shell)
	}

	logger := logging.GetLogger("startup")
	sched := scheduler.New(scheduler.Config{Logger: logger})

	var sess *session
	sched.AddSyncStep("resolve paths and config", func(ctx context.Context) error {
		s, err := newSession()
		sess = s
		return err
	})
	sched.AddSyncStep("validate prompt theme", func(ctx context.Context) error {
		if sess.cfg.Prompt.Theme == "" {
			return nil
		}
		return prompt.ValidateTheme(sess.cfg.Prompt.Theme)
	})

	if err := sched.RunSynchronousPhase(ctx); err != nil {
		return err
	}
	sched.EnterInteractiveMode(ctx)

	script, err := hooks.NewGenerator(sess.cfg, sess.paths.ExecPath()).Script(shell)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, script)

	// Optional early theme init: trade a little synchronous latency for
	// never showing the placeholder. Failure falls back silently, the
	// deferred phase gets another shot.
	if sess.cfg.Prompt.EarlyInit {
		engine := prompt.NewEngine(sess.cmd, sess.detector, sess.cfg.Prompt)
		if code, err := engine.Init(ctx, shell); err == nil {
			fmt.Fprintln(out, code)
			fmt.Fprintf(out, "export %s=1\n", themedEnvVar)
		} else {
			logger.Debug().Err(err).Msg("Early theme init failed, using placeholder")
		}
	}

	return nil
}

func newInitDeferredCmd() *cobra.Command {
	var shell string

	cmd := &cobra.Command{
		Use:    "deferred",
		Hidden: true,
		Short:  "Run the deferred startup phase and print its shell code",
		Long: `Deferred is called by the generated hook script from the shell's
one-shot idle callback. It runs every deferred task, then prints the
shell code the session still needs: themed prompt init, completion
registrations and tool hooks. Individual task failures are logged and
absorbed, never surfaced to the shell.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitDeferred(cmd.Context(), cmd.OutOrStdout(), shell)
		},
	}

	cmd.Flags().StringVar(&shell, "shell", "zsh", "Shell the emitted code targets")
	return cmd
}

func runInitDeferred(ctx context.Context, out io.Writer, shell string) error {
	if !isSupportedShell(shell) {
		return errors.Newf(errors.ErrInvalidInput, "unsupported shell: %s", shell)
	}

	sess, err := newSession()
	if err != nil {
		return err
	}

	logger := logging.GetLogger("startup")
	var buf strings.Builder
	installer := &shellPromptInstaller{out: &buf}

	engine := prompt.NewEngine(sess.cmd, sess.detector, sess.cfg.Prompt)
	var themeInit func(ctx context.Context) (string, error)
	if os.Getenv(themedEnvVar) != "1" {
		themeInit = func(ctx context.Context) (string, error) {
			return engine.Init(ctx, shell)
		}
	}

	notifier := scheduler.NewManualNotifier()
	sched := scheduler.New(scheduler.Config{
		// stdout is captured by the script's eval, so the terminal
		// check goes against stderr.
		Interactive:     isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
		Notifier:        notifier,
		Prompt:          installer,
		PlaceholderText: sess.cfg.Prompt.Placeholder,
		ThemeInit:       themeInit,
		Logger:          logger,
	})

	if sess.cfg.Completions.Enabled {
		sched.AddTask("register completions", func(ctx context.Context) error {
			registry := buildCompletionRegistry(sess)
			for _, tool := range registry.Tools() {
				fmt.Fprintln(&buf, completions.Registration(shell, sess.paths.ExecPath(), tool))
			}
			return nil
		})
	}

	sched.AddTask("tool hooks", func(ctx context.Context) error {
		snippets, errs := hooks.ToolHookCode(ctx, sess.cmd, sess.detector, sess.cfg.Hooks, shell)
		for _, snippet := range snippets {
			fmt.Fprintln(&buf, snippet)
		}
		for _, err := range errs {
			logger.Debug().Err(err).Msg("Tool hook skipped")
		}
		return nil
	})

	if err := sched.RunSynchronousPhase(ctx); err != nil {
		return err
	}
	sched.EnterInteractiveMode(ctx)
	notifier.Fire()

	fmt.Fprint(out, buf.String())
	return nil
}

// buildCompletionRegistry registers a completer for every configured
// tool. Registration silently drops tools that are not installed.
func buildCompletionRegistry(sess *session) *completions.Registry {
	registry := completions.NewRegistry(sess.detector, sess.cfg.Completions.MinWordLength)
	for _, tool := range sess.cfg.Completions.Tools {
		switch tool {
		case "az":
			registry.Register(&completions.AzCompleter{Cmd: sess.cmd})
		case "dotnet":
			registry.Register(&completions.DotnetCompleter{Cmd: sess.cmd})
		case "docker":
			registry.Register(&completions.DockerCompleter{Cmd: sess.cmd})
		}
	}
	return registry
}

// shellPromptInstaller buffers prompt shell code for the eval'ing
// shell. The hook script already painted the placeholder and repaints
// after eval, so only the themed swap produces output here.
type shellPromptInstaller struct {
	out io.Writer
}

func (i *shellPromptInstaller) Install(state prompt.State, code string) {
	if state == prompt.StateThemed {
		fmt.Fprintln(i.out, code)
	}
}

func (i *shellPromptInstaller) Redraw() {}

func isSupportedShell(shell string) bool {
	for _, s := range hooks.SupportedShells {
		if s == shell {
			return true
		}
	}
	return false
}
