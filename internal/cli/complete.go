package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "complete <tool> -- [words...]",
		Hidden: true,
		Short:  "Produce argument completions for an external tool",
		Long: `Complete is called by the completion functions the deferred phase
registers. It prints one candidate per line; on any problem it prints
nothing and exits 0, so a broken tool degrades to no completions
instead of an error mid-keystroke.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				// No session means no candidates, never a visible error.
				return nil
			}

			registry := buildCompletionRegistry(sess)
			for _, c := range registry.Complete(cmd.Context(), args[0], args[1:]) {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
