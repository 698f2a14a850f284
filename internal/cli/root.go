// Package cli wires the spry command tree.
package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/spry/internal/version"
	"github.com/arthur-debert/spry/pkg/capability"
	"github.com/arthur-debert/spry/pkg/config"
	"github.com/arthur-debert/spry/pkg/execx"
	"github.com/arthur-debert/spry/pkg/logging"
	"github.com/arthur-debert/spry/pkg/paths"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "spry",
		Short: "A two-phase interactive shell bootstrapper",
		Long: `spry keeps interactive shell startup fast by splitting it into two
phases: a minimal synchronous phase that runs before the first prompt,
and a deferred phase that initializes prompt theming, completions and
tool hooks once the shell goes idle.

Add 'eval "$(spry init zsh)"' (or bash) to your shell rc file.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newHookCmd())
	rootCmd.AddCommand(newSnippetCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newBranchesCmd())
	rootCmd.AddCommand(newKubeCmd())
	rootCmd.AddCommand(newCompleteCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newGenConfigCmd())

	return rootCmd
}

// session bundles the long-lived collaborators most commands need.
type session struct {
	paths    *paths.Paths
	cfg      *config.Config
	cmd      execx.Commander
	detector *capability.Detector
}

func newSession() (*session, error) {
	p, err := paths.New()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(p.ConfigDir())
	if err != nil {
		return nil, err
	}
	return &session{
		paths:    p,
		cfg:      cfg,
		cmd:      &execx.RealCommander{},
		detector: capability.NewDetector(),
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("spry version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genconfig",
		Short: "Print the default configuration file",
		Long: `Genconfig prints the built-in defaults as a TOML document. Redirect
it to get a starting point for your own config:

  spry genconfig > ~/.config/spry/spry.toml`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(config.GetDefaultConfigContent())
		},
	}
}
