package execx

import (
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealCommanderRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX echo")
	}

	c := &RealCommander{}
	out, err := c.Run(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))
}

func TestRealCommanderRunFailureIncludesStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}

	c := &RealCommander{}
	_, err := c.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRealCommanderRunInput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on cat")
	}

	c := &RealCommander{}
	out, err := c.RunInput(context.Background(), "a\nb\n", "cat")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(out))
}

func TestRealCommanderRunWithEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}

	c := &RealCommander{}
	out, err := c.RunWithEnv(context.Background(), map[string]string{"SPRY_TEST_VAR": "42"}, "sh", "-c", "echo $SPRY_TEST_VAR")
	require.NoError(t, err)
	assert.Equal(t, "42", strings.TrimSpace(string(out)))
}

func TestFakeCommander(t *testing.T) {
	f := NewFakeCommander().
		Respond("git status", "clean").
		Fail("git push", assert.AnError)

	out, err := f.Run(context.Background(), "git", "status")
	require.NoError(t, err)
	assert.Equal(t, "clean", string(out))

	_, err = f.Run(context.Background(), "git", "push")
	assert.ErrorIs(t, err, assert.AnError)

	_, err = f.Run(context.Background(), "git", "pull")
	assert.Error(t, err, "unscripted commands must fail")

	assert.Equal(t, 2, f.CallCount("git status")+f.CallCount("git push"))
}

func TestFakeCommanderRecordsStdin(t *testing.T) {
	f := NewFakeCommander().Respond("fzf", "picked")

	out, err := f.RunInput(context.Background(), "a\nb\n", "fzf")
	require.NoError(t, err)
	assert.Equal(t, "picked", string(out))
	assert.Equal(t, "a\nb\n", f.Stdin["fzf"])
}
