package scheduler

import "sync"

// IdleNotifier is the host's idle-event mechanism: register a zero-arg
// callback to run at the host's next idle point. The embedding
// application owns the dispatch loop; spry's shell hooks drive it via a
// one-shot precmd hook, tests drive it manually.
type IdleNotifier interface {
	// Subscribe registers the callback and returns its subscription
	// token. The callback may be invoked more than once before an
	// Unsubscribe takes effect; callers must guard accordingly.
	Subscribe(callback func()) IdleSubscription
}

// IdleSubscription is the registration token for one idle callback.
type IdleSubscription interface {
	// Unsubscribe removes the callback. Idempotent.
	Unsubscribe()
}

// ManualNotifier is an IdleNotifier driven by explicit Fire calls.
// It is the production notifier for the CLI, where the generated shell
// hook decides when the session is idle, and the test notifier.
type ManualNotifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// NewManualNotifier returns an empty notifier.
func NewManualNotifier() *ManualNotifier {
	return &ManualNotifier{subs: make(map[int]func())}
}

// Subscribe implements IdleNotifier.
func (n *ManualNotifier) Subscribe(callback func()) IdleSubscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	n.subs[id] = callback
	return &manualSubscription{notifier: n, id: id}
}

// Fire invokes every live callback, simulating one idle event.
func (n *ManualNotifier) Fire() {
	n.mu.Lock()
	callbacks := make([]func(), 0, len(n.subs))
	for _, cb := range n.subs {
		callbacks = append(callbacks, cb)
	}
	n.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}

// Active returns the number of live subscriptions.
func (n *ManualNotifier) Active() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

type manualSubscription struct {
	notifier *ManualNotifier
	id       int
}

func (s *manualSubscription) Unsubscribe() {
	s.notifier.mu.Lock()
	defer s.notifier.mu.Unlock()
	delete(s.notifier.subs, s.id)
}
