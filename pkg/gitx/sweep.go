package gitx

import (
	"context"

	"github.com/arthur-debert/spry/pkg/errors"
	"github.com/arthur-debert/spry/pkg/logging"
)

// SweepOptions controls a branch sweep.
type SweepOptions struct {
	// DryRun reports what would be deleted without deleting.
	DryRun bool
	// Force deletes with -D instead of -d.
	Force bool
	// Protected branches are never deleted regardless of classification.
	Protected []string
	// Remote, when non-empty, is fetched with pruning before classifying.
	Remote string
}

// SweepResult describes one branch's fate during a sweep.
type SweepResult struct {
	Branch  Branch
	Safety  Safety
	Deleted bool
	// WouldDelete marks a dry-run candidate a real sweep would delete.
	WouldDelete bool
	Skipped     string // non-empty reason when not deleted
	Err         error
}

// Sweep classifies every local branch and deletes the safe ones; with
// Force the unsafe and indeterminate ones go too. The current branch
// and protected branches are always skipped. A single failed deletion
// does not stop the sweep.
func (c *Client) Sweep(ctx context.Context, opts SweepOptions) ([]SweepResult, error) {
	defer logging.LogOperationStart(c.logger, "branch sweep")()

	if opts.Remote != "" {
		if err := c.Fetch(ctx, opts.Remote); err != nil {
			return nil, err
		}
	}

	branches, err := c.ListBranches(ctx)
	if err != nil {
		return nil, err
	}

	protected := make(map[string]bool, len(opts.Protected))
	for _, name := range opts.Protected {
		protected[name] = true
	}

	var results []SweepResult
	for _, b := range branches {
		r := SweepResult{Branch: b, Safety: Classify(b)}

		switch {
		case b.Current:
			r.Skipped = "current branch"
		case protected[b.Name]:
			r.Skipped = "protected"
		// Force overrides the safety classification, never the
		// current-branch and protected guards.
		case r.Safety != SafeToDelete && !opts.Force:
			r.Skipped = r.Safety.String()
		case opts.DryRun:
			r.WouldDelete = true
		default:
			if err := c.DeleteBranch(ctx, b.Name, opts.Force); err != nil {
				r.Err = errors.Wrapf(err, errors.ErrBranchDelete, "sweep of %s failed", b.Name)
			} else {
				r.Deleted = true
			}
		}

		results = append(results, r)
	}
	return results, nil
}
