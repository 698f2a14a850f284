// Package gitx wraps the git CLI for the branch maintenance utilities:
// listing local branches with their upstream ahead/behind counts,
// classifying deletion safety and sweeping fully-merged branches.
package gitx

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/spry/pkg/errors"
	"github.com/arthur-debert/spry/pkg/execx"
	"github.com/arthur-debert/spry/pkg/logging"
)

// Safety classifies whether a local branch can be deleted without losing
// commits.
type Safety int

const (
	// SafeToDelete means the branch has no commits its upstream lacks.
	SafeToDelete Safety = iota
	// NotSafe means the branch is ahead of its upstream.
	NotSafe
	// Indeterminate means there is no upstream to compare against.
	// Callers must treat it like NotSafe.
	Indeterminate
)

// String implements fmt.Stringer.
func (s Safety) String() string {
	switch s {
	case SafeToDelete:
		return "safe"
	case NotSafe:
		return "not-safe"
	default:
		return "indeterminate"
	}
}

// Branch is a local branch and its relation to its upstream.
type Branch struct {
	Name     string
	Upstream string
	Ahead    int
	Behind   int
	Current  bool
}

// Classify applies the deletion-safety rule: a branch with no unique
// commits (ahead == 0) is safe regardless of how far behind it is; any
// unique commit makes it unsafe; without a resolvable upstream there is
// nothing to compare against.
func Classify(b Branch) Safety {
	if b.Upstream == "" {
		return Indeterminate
	}
	if b.Ahead == 0 {
		return SafeToDelete
	}
	return NotSafe
}

// Client runs git operations through a Commander.
type Client struct {
	cmd    execx.Commander
	logger zerolog.Logger

	switchOnce  sync.Once
	switchAvail bool
}

// NewClient returns a git client using the given Commander.
func NewClient(cmd execx.Commander) *Client {
	return &Client{
		cmd:    cmd,
		logger: logging.GetLogger("gitx"),
	}
}

// ListBranches returns all local branches with upstream and ahead/behind
// counts populated where an upstream exists.
func (c *Client) ListBranches(ctx context.Context) ([]Branch, error) {
	out, err := c.cmd.Run(ctx, "git", "for-each-ref", "refs/heads",
		"--format=%(refname:short)\t%(upstream:short)\t%(HEAD)")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrGitFailed, "failed to list branches")
	}

	var branches []Branch
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		b := Branch{Name: fields[0]}
		if len(fields) > 1 {
			b.Upstream = fields[1]
		}
		if len(fields) > 2 && fields[2] == "*" {
			b.Current = true
		}

		if b.Upstream != "" {
			ahead, behind, err := c.AheadBehind(ctx, b.Name, b.Upstream)
			if err != nil {
				// Upstream ref exists in config but cannot be resolved,
				// e.g. the remote branch was pruned. Treat as no upstream.
				c.logger.Debug().Err(err).Str("branch", b.Name).Msg("Cannot resolve upstream")
				b.Upstream = ""
			} else {
				b.Ahead = ahead
				b.Behind = behind
			}
		}

		branches = append(branches, b)
	}
	return branches, nil
}

// AheadBehind returns how many commits branch has that upstream lacks,
// and vice versa.
func (c *Client) AheadBehind(ctx context.Context, branch, upstream string) (ahead, behind int, err error) {
	out, err := c.cmd.Run(ctx, "git", "rev-list", "--left-right", "--count", branch+"..."+upstream)
	if err != nil {
		return 0, 0, errors.Wrapf(err, errors.ErrNoUpstream, "cannot compare %s to %s", branch, upstream)
	}

	fields := strings.Fields(string(out))
	if len(fields) != 2 {
		return 0, 0, errors.Newf(errors.ErrGitFailed, "unexpected rev-list output: %q", string(out))
	}
	ahead, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrGitFailed, "unexpected rev-list output")
	}
	behind, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrGitFailed, "unexpected rev-list output")
	}
	return ahead, behind, nil
}

// DeleteBranch removes a local branch. force uses -D.
func (c *Client) DeleteBranch(ctx context.Context, name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	if _, err := c.cmd.Run(ctx, "git", "branch", flag, name); err != nil {
		return errors.Wrapf(err, errors.ErrBranchDelete, "failed to delete branch %s", name)
	}
	c.logger.Info().Str("branch", name).Msg("Deleted branch")
	return nil
}

// HasSwitch reports whether this git knows the switch subcommand.
// Probed once by exit code, not by parsing version strings.
func (c *Client) HasSwitch(ctx context.Context) bool {
	c.switchOnce.Do(func() {
		_, err := c.cmd.Run(ctx, "git", "switch", "-h")
		c.switchAvail = err == nil
	})
	return c.switchAvail
}

// Switch checks out the named branch, preferring git switch.
func (c *Client) Switch(ctx context.Context, branch string) error {
	sub := "checkout"
	if c.HasSwitch(ctx) {
		sub = "switch"
	}
	if _, err := c.cmd.Run(ctx, "git", sub, branch); err != nil {
		return errors.Wrapf(err, errors.ErrGitFailed, "failed to switch to %s", branch)
	}
	return nil
}

// Fetch updates remote tracking refs, pruning deleted remote branches so
// ahead/behind counts reflect reality.
func (c *Client) Fetch(ctx context.Context, remote string) error {
	if _, err := c.cmd.Run(ctx, "git", "fetch", "--prune", remote); err != nil {
		return errors.Wrapf(err, errors.ErrGitFailed, "failed to fetch %s", remote)
	}
	return nil
}
