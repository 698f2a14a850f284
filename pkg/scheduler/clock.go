package scheduler

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// StartupClock measures the boot sequence. It starts when constructed,
// logs elapsed time at named checkpoints and is stopped exactly once,
// when the deferred phase completes. Observability only: nothing reads
// it for control flow.
type StartupClock struct {
	mu      sync.Mutex
	start   time.Time
	stopped bool
	total   time.Duration
	logger  zerolog.Logger
}

// NewStartupClock starts a clock.
func NewStartupClock(logger zerolog.Logger) *StartupClock {
	return &StartupClock{start: time.Now(), logger: logger}
}

// Checkpoint logs the elapsed time under the given label.
func (c *StartupClock) Checkpoint(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger.Debug().
		Str("checkpoint", label).
		Dur("elapsed", time.Since(c.start)).
		Msg("Startup checkpoint")
}

// Stop freezes the clock and emits the final timing line. Subsequent
// calls are no-ops.
func (c *StartupClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	c.total = time.Since(c.start)
	c.logger.Debug().
		Dur("total", c.total).
		Msg("Startup complete")
}

// Elapsed returns the total startup time, or the running time if the
// clock has not been stopped yet.
func (c *StartupClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return c.total
	}
	return time.Since(c.start)
}

// Stopped reports whether Stop has been called.
func (c *StartupClock) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}
