package execx

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeCommander is a scripted Commander for tests. Responses are keyed by
// the joined command line; unmatched invocations return an error.
type FakeCommander struct {
	mu sync.Mutex

	// Responses maps "name arg1 arg2..." to canned output.
	Responses map[string]FakeResponse

	// Calls records every invocation in order.
	Calls []string

	// Stdin records the stdin passed to RunInput invocations, keyed the
	// same way as Responses.
	Stdin map[string]string
}

// FakeResponse is a canned command result.
type FakeResponse struct {
	Output string
	Err    error
}

// NewFakeCommander returns an empty FakeCommander.
func NewFakeCommander() *FakeCommander {
	return &FakeCommander{
		Responses: make(map[string]FakeResponse),
		Stdin:     make(map[string]string),
	}
}

// Respond registers output for a command line.
func (f *FakeCommander) Respond(cmdline, output string) *FakeCommander {
	f.Responses[cmdline] = FakeResponse{Output: output}
	return f
}

// Fail registers an error for a command line.
func (f *FakeCommander) Fail(cmdline string, err error) *FakeCommander {
	f.Responses[cmdline] = FakeResponse{Err: err}
	return f
}

// CallCount returns the number of recorded invocations matching prefix.
func (f *FakeCommander) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *FakeCommander) lookup(name string, args []string) ([]byte, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.mu.Lock()
	f.Calls = append(f.Calls, key)
	resp, ok := f.Responses[key]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("fake commander: unexpected command %q", key)
	}
	return []byte(resp.Output), resp.Err
}

// Run implements Commander.
func (f *FakeCommander) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	return f.lookup(name, args)
}

// RunInput implements Commander, recording stdin for later assertions.
func (f *FakeCommander) RunInput(_ context.Context, stdin string, name string, args ...string) ([]byte, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.mu.Lock()
	f.Stdin[key] = stdin
	f.mu.Unlock()
	return f.lookup(name, args)
}

// RunWithEnv implements Commander, ignoring the extra environment.
func (f *FakeCommander) RunWithEnv(_ context.Context, _ map[string]string, name string, args ...string) ([]byte, error) {
	return f.lookup(name, args)
}
