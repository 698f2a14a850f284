// Package scheduler implements spry's two-phase interactive startup: a
// synchronous critical path that must finish before the first prompt,
// and a deferred path that runs once, triggered by the session going
// idle after the first prompt paint.
//
// The scheduler is an explicit instance with no package-level state, so
// the guard-flag and idempotence contracts are testable directly.
package scheduler

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/spry/pkg/errors"
	"github.com/arthur-debert/spry/pkg/prompt"
)

// BootPhase tracks which stage of startup is active.
type BootPhase int

const (
	// PhaseSynchronous is the critical path before the first prompt.
	PhaseSynchronous BootPhase = iota
	// PhaseDeferred means the session is interactive and the deferred
	// callback is registered but has not completed.
	PhaseDeferred
	// PhaseComplete means deferred work finished (or was never
	// scheduled, for non-interactive sessions).
	PhaseComplete
)

// String implements fmt.Stringer.
func (p BootPhase) String() string {
	switch p {
	case PhaseSynchronous:
		return "synchronous"
	case PhaseDeferred:
		return "deferred"
	default:
		return "complete"
	}
}

// SyncStep is one unit of the synchronous phase. A failing step aborts
// startup: everything on the critical path is required.
type SyncStep struct {
	Label string
	Run   func(ctx context.Context) error
}

// DeferredTask is one unit of the deferred phase. Tasks run in FIFO
// registration order, are expected to tolerate missing external tools,
// and a failing task never stops the ones after it.
type DeferredTask struct {
	Label string
	Run   func(ctx context.Context) error
}

// PromptInstaller owns the session's prompt binding. Install swaps the
// prompt implementation; Redraw repaints the current prompt line so the
// user sees the swap without pressing Enter.
type PromptInstaller interface {
	Install(state prompt.State, code string)
	Redraw()
}

// Config wires a Scheduler.
type Config struct {
	// Interactive gates the whole deferred machinery. Non-interactive
	// sessions get the synchronous phase only.
	Interactive bool

	// Notifier is the host idle-event mechanism.
	Notifier IdleNotifier

	// Prompt receives prompt swaps. Required when Interactive.
	Prompt PromptInstaller

	// PlaceholderText is rendered into the placeholder prompt.
	PlaceholderText string

	// ThemeInit produces the shell code for the themed prompt. May be
	// nil when no engine is available; the placeholder then stays.
	ThemeInit func(ctx context.Context) (string, error)

	// EarlyThemeInit attempts ThemeInit synchronously during
	// EnterInteractiveMode, trading a little startup latency for
	// avoiding the placeholder-to-themed flash.
	EarlyThemeInit bool

	Logger zerolog.Logger
}

// Scheduler orchestrates the two-phase boot sequence.
type Scheduler struct {
	cfg   Config
	clock *StartupClock

	mu          sync.Mutex
	phase       BootPhase
	promptState prompt.State
	deferredRan bool
	syncSteps   []SyncStep
	tasks       []DeferredTask
	sub         IdleSubscription
	logger      zerolog.Logger
}

// New builds a Scheduler and starts its clock.
func New(cfg Config) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		clock:  NewStartupClock(cfg.Logger),
		phase:  PhaseSynchronous,
		logger: cfg.Logger,
	}
}

// Clock exposes the startup clock for timing diagnostics.
func (s *Scheduler) Clock() *StartupClock {
	return s.clock
}

// Phase returns the current boot phase.
func (s *Scheduler) Phase() BootPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// PromptState returns which prompt implementation is installed.
func (s *Scheduler) PromptState() prompt.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promptState
}

// Subscribed reports whether an idle subscription is live.
func (s *Scheduler) Subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sub != nil
}

// AddSyncStep registers a synchronous-phase step.
func (s *Scheduler) AddSyncStep(label string, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncSteps = append(s.syncSteps, SyncStep{Label: label, Run: run})
}

// AddTask registers a deferred-phase task. FIFO order is preserved.
func (s *Scheduler) AddTask(label string, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, DeferredTask{Label: label, Run: run})
}

// RunSynchronousPhase executes the critical path. Only fast, required
// work belongs here; the first failure aborts startup and is surfaced
// to the caller.
func (s *Scheduler) RunSynchronousPhase(ctx context.Context) error {
	s.mu.Lock()
	steps := s.syncSteps
	s.mu.Unlock()

	for _, step := range steps {
		if err := step.Run(ctx); err != nil {
			return errors.Wrapf(err, errors.ErrSyncPhase, "startup step %q failed", step.Label)
		}
		s.clock.Checkpoint(step.Label)
	}
	return nil
}

// EnterInteractiveMode installs the initial prompt and registers the
// idle callback. For non-interactive sessions this is a no-op: no
// prompt, no subscription, phase goes straight to complete.
func (s *Scheduler) EnterInteractiveMode(ctx context.Context) {
	if !s.cfg.Interactive {
		s.mu.Lock()
		s.phase = PhaseComplete
		s.mu.Unlock()
		s.clock.Stop()
		return
	}

	installed := prompt.StatePlaceholder
	code := prompt.Placeholder(s.cfg.PlaceholderText)

	// Early best-effort theme init avoids the visible placeholder flash
	// when the engine binary is already resolvable.
	if s.cfg.EarlyThemeInit && s.cfg.ThemeInit != nil {
		if themed, err := s.cfg.ThemeInit(ctx); err == nil {
			installed = prompt.StateThemed
			code = themed
		} else {
			s.logger.Debug().Err(err).Msg("Early theme init failed, using placeholder")
		}
	}

	s.cfg.Prompt.Install(installed, code)
	s.clock.Checkpoint("prompt installed")

	s.mu.Lock()
	s.promptState = installed
	s.phase = PhaseDeferred
	s.sub = s.cfg.Notifier.Subscribe(func() {
		s.RunDeferredPhase(ctx)
	})
	s.mu.Unlock()
}

// RunDeferredPhase executes all registered deferred tasks. The host's
// idle mechanism may fire more than once before unregistration is
// observed, so the guard flag is checked-and-set as the very first
// action. The phase always terminates with the idle subscription
// removed and the best available prompt installed, no matter how many
// tasks failed.
func (s *Scheduler) RunDeferredPhase(ctx context.Context) {
	s.mu.Lock()
	if s.deferredRan {
		s.mu.Unlock()
		return
	}
	s.deferredRan = true
	tasks := s.tasks
	s.mu.Unlock()

	for _, task := range tasks {
		if err := runTask(ctx, task); err != nil {
			// A broken optional tool degrades one feature, never the session
			s.logger.Debug().Err(err).Str("task", task.Label).Msg("Deferred task failed")
		}
		s.clock.Checkpoint(task.Label)
	}

	s.finalize(ctx)
}

// runTask confines a task's panic to that task.
func runTask(ctx context.Context, task DeferredTask) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf(errors.ErrInternal, "task %q panicked: %v", task.Label, r)
		}
	}()
	return task.Run(ctx)
}

// finalize restores the prompt, removes the idle subscription and stops
// the clock. Runs exactly once, after the guarded task loop.
func (s *Scheduler) finalize(ctx context.Context) {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	themed := s.promptState == prompt.StateThemed
	s.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}

	if !themed && s.cfg.ThemeInit != nil {
		if code, err := s.cfg.ThemeInit(ctx); err == nil {
			s.cfg.Prompt.Install(prompt.StateThemed, code)
			themed = true
		} else {
			s.logger.Debug().Err(err).Msg("Theme init failed, placeholder prompt stays")
		}
	}

	if s.cfg.Prompt != nil {
		s.cfg.Prompt.Redraw()
	}

	s.mu.Lock()
	if themed {
		s.promptState = prompt.StateThemed
	}
	s.phase = PhaseComplete
	s.mu.Unlock()

	s.clock.Stop()
}
