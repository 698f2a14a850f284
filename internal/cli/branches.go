package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/spry/pkg/fzf"
	"github.com/arthur-debert/spry/pkg/gitx"
)

func newBranchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branches",
		Short: "Local git branch maintenance",
		Long: `Branches classifies local branches against their upstreams. A branch
with zero commits ahead of its upstream is safe to delete; anything
with unpushed commits, or without an upstream at all, is kept unless
forced.`,
	}
	cmd.AddCommand(newBranchesSweepCmd())
	cmd.AddCommand(newBranchesPickCmd())
	return cmd
}

func newBranchesSweepCmd() *cobra.Command {
	var (
		dryRun  bool
		force   bool
		noFetch bool
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete local branches that are fully pushed",
		Example: `  # Preview what would be deleted
  spry branches sweep --dry-run

  # Delete safe branches
  spry branches sweep

  # Also delete branches with unpushed commits or no upstream
  spry branches sweep --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}

			remote := sess.cfg.Git.DefaultRemote
			if noFetch {
				remote = ""
			}

			git := gitx.NewClient(sess.cmd)
			results, err := git.Sweep(cmd.Context(), gitx.SweepOptions{
				DryRun:    dryRun,
				Force:     force,
				Protected: sess.cfg.Git.ProtectedBranches,
				Remote:    remote,
			})
			if err != nil {
				return err
			}

			printSweepResults(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be deleted without deleting")
	cmd.Flags().BoolVar(&force, "force", false, "Delete unsafe branches too (git branch -D)")
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Skip the pruning fetch before classifying")
	return cmd
}

func printSweepResults(w io.Writer, results []gitx.SweepResult) {
	deleted, pending := 0, 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(w, "  ✗ %s: %v\n", r.Branch.Name, r.Err)
		case r.Deleted:
			deleted++
			fmt.Fprintf(w, "  ✓ deleted %s\n", r.Branch.Name)
		case r.WouldDelete:
			pending++
			fmt.Fprintf(w, "  would delete %s (%s)\n", r.Branch.Name, r.Safety)
		case r.Skipped != "":
			fmt.Fprintf(w, "  - kept %s: %s\n", r.Branch.Name, r.Skipped)
		}
	}

	if deleted == 0 && pending == 0 {
		fmt.Fprintln(w, "Nothing to sweep.")
	} else if pending > 0 {
		fmt.Fprintf(w, "\n%d branches would be deleted. Rerun without --dry-run to delete.\n", pending)
	}
}

func newBranchesPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Fuzzy-pick a local branch and switch to it",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}

			git := gitx.NewClient(sess.cmd)
			branches, err := git.ListBranches(cmd.Context())
			if err != nil {
				return err
			}

			candidates := make([]string, 0, len(branches))
			for _, b := range branches {
				if !b.Current {
					candidates = append(candidates, b.Name)
				}
			}

			picker := fzf.NewPicker(sess.cmd, sess.detector)
			choice, err := picker.Pick(cmd.Context(), candidates, "branch")
			if err != nil {
				return err
			}

			log.Info().Str("branch", choice).Msg("Switching branch")
			return git.Switch(cmd.Context(), choice)
		},
	}
}
