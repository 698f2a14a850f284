package cli

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/spry/pkg/hooks"
	"github.com/arthur-debert/spry/pkg/shell"
)

func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Manage the per-shell integration scripts",
		Long: `Hook renders and installs the scripts that connect spry to your
shell. "hook print" is what 'spry init' evals; "hook install" writes the
scripts to the data directory so rc files can source them instead of
spawning spry at every startup.`,
	}

	cmd.AddCommand(newHookPrintCmd())
	cmd.AddCommand(newHookInstallCmd())
	cmd.AddCommand(newHookPathCmd())
	return cmd
}

func newHookPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "print <shell>",
		Short:     "Print the integration script for a shell",
		Args:      cobra.ExactArgs(1),
		ValidArgs: hooks.SupportedShells,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}
			script, err := hooks.NewGenerator(sess.cfg, sess.paths.ExecPath()).Script(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), script)
			return nil
		},
	}
}

func newHookInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Write the integration scripts to the data directory",
		Long: `Install renders the script for every supported shell and writes them
under the spry data directory. Sourcing the installed file from your rc
is faster than eval'ing 'spry init' because it skips a process spawn on
every shell startup; rerun install after upgrading spry or changing
your config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}

			gen := hooks.NewGenerator(sess.cfg, sess.paths.ExecPath())
			scripts := make(map[string]string, len(hooks.SupportedShells))
			for _, sh := range hooks.SupportedShells {
				script, err := gen.Script(sh)
				if err != nil {
					return err
				}
				scripts[filepath.Base(sess.paths.HookScriptPath(sh))] = script
			}

			log.Info().Str("dir", sess.paths.HooksPath()).Msg("Installing hook scripts")
			if err := hooks.NewInstaller().Install(sess.paths.HooksPath(), scripts); err != nil {
				return err
			}

			for _, sh := range hooks.SupportedShells {
				fmt.Printf("  ✓ %s\n", sess.paths.HookScriptPath(sh))
			}
			fmt.Printf("\nSource the script for your shell, e.g. in ~/.zshrc:\n")
			fmt.Printf("  source %q\n", sess.paths.HookScriptPath("zsh"))
			return nil
		},
	}
}

func newHookPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "path <shell>",
		Short:     "Print where the installed script for a shell lives",
		Args:      cobra.ExactArgs(1),
		ValidArgs: hooks.SupportedShells,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sess.paths.HookScriptPath(args[0]))
			return nil
		},
	}
}

func newSnippetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snippet [shell]",
		Short: "Print the line to add to your shell rc file",
		Long: `Snippet prints the one line that belongs in your rc file. It prefers
sourcing an installed hook script and falls back to eval'ing
'spry init' when none is installed.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: hooks.SupportedShells,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}
			sh := "zsh"
			if len(args) == 1 {
				sh = args[0]
			}
			fmt.Fprintln(cmd.OutOrStdout(), shell.GetIntegrationSnippet(sh, sess.paths))
			return nil
		},
	}
}
