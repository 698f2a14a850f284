package cli

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/spry/pkg/history"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "History redaction helpers",
	}
	cmd.AddCommand(newHistoryCheckCmd())
	return cmd
}

func newHistoryCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check -- <command line>",
		Short: "Decide whether a command line may be recorded",
		Long: `Check exits 0 when the command line is safe to record and 1 when it
matches the redaction deny-list. The generated shell hooks call this
before every history write; the command itself still runs either way.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}

			line := strings.Join(args, " ")
			filter := history.NewFilter(sess.cfg.History.DenyList)
			if !sess.cfg.History.Filter || filter.ShouldRecord(line) {
				return nil
			}

			log.Debug().Msg("Command line matched the history deny-list")
			// The hook reads the exit code and nothing else.
			os.Exit(1)
			return nil
		},
	}
}
