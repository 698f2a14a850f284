// Package execx abstracts external command execution for testability.
// Production code uses the Commander interface; tests inject FakeCommander.
package execx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Commander abstracts external command execution.
type Commander interface {
	// Run executes an external command and returns its stdout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// RunInput executes an external command with the given stdin and
	// returns its stdout. Used for pipe-style tools such as fzf.
	RunInput(ctx context.Context, stdin string, name string, args ...string) ([]byte, error)

	// RunWithEnv executes an external command with additional environment
	// variables merged on top of the current process environment.
	RunWithEnv(ctx context.Context, env map[string]string, name string, args ...string) ([]byte, error)
}

// RealCommander executes actual external commands via os/exec.
type RealCommander struct{}

// Run executes the command using os/exec.CommandContext.
func (c *RealCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), wrapExitErr(err, name, &stderr)
	}
	return stdout.Bytes(), nil
}

// RunInput executes the command feeding stdin from the given string.
// The command inherits the terminal's stderr so interactive tools like
// fzf can draw their UI.
func (c *RealCommander) RunInput(ctx context.Context, stdin string, name string, args ...string) ([]byte, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

// RunWithEnv executes the command with additional environment variables.
func (c *RealCommander) RunWithEnv(ctx context.Context, env map[string]string, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), mapToEnvSlice(env)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), wrapExitErr(err, name, &stderr)
	}
	return stdout.Bytes(), nil
}

// wrapExitErr attaches trimmed stderr to the error so callers can log
// something actionable without re-running the command.
func wrapExitErr(err error, name string, stderr *bytes.Buffer) error {
	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		return fmt.Errorf("%s: %w", name, err)
	}
	return fmt.Errorf("%s: %w: %s", name, err, msg)
}

// mapToEnvSlice converts a map of environment variables to a slice of "KEY=VALUE" strings.
func mapToEnvSlice(env map[string]string) []string {
	if env == nil {
		return nil
	}
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}
