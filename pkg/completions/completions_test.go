package completions

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/spry/pkg/capability"
	"github.com/arthur-debert/spry/pkg/execx"
)

func detectorWith(tools ...string) *capability.Detector {
	present := make(map[string]bool)
	for _, tool := range tools {
		present[tool] = true
	}
	return capability.NewDetectorWithLookup(func(tool string) (string, error) {
		if present[tool] {
			return "/usr/bin/" + tool, nil
		}
		return "", errors.New("not found")
	})
}

func TestRegistrySkipsAbsentTools(t *testing.T) {
	r := NewRegistry(detectorWith("docker"), 2)
	r.Register(&DockerCompleter{Cmd: execx.NewFakeCommander()})
	r.Register(&AzCompleter{Cmd: execx.NewFakeCommander()})

	assert.Equal(t, []string{"docker"}, r.Tools())
}

func TestRegistryToolsSorted(t *testing.T) {
	r := NewRegistry(detectorWith("docker", "az", "dotnet"), 2)
	r.Register(&DockerCompleter{Cmd: execx.NewFakeCommander()})
	r.Register(&DotnetCompleter{Cmd: execx.NewFakeCommander()})
	r.Register(&AzCompleter{Cmd: execx.NewFakeCommander()})

	assert.Equal(t, []string{"az", "docker", "dotnet"}, r.Tools())
}

func TestRegistryShortInputNeverCallsOut(t *testing.T) {
	fake := execx.NewFakeCommander()
	r := NewRegistry(detectorWith("docker"), 2)
	r.Register(&DockerCompleter{Cmd: fake})

	assert.Nil(t, r.Complete(context.Background(), "docker", nil))
	assert.Nil(t, r.Complete(context.Background(), "docker", []string{"c"}))
	// A blank partial counts as too short, a bare <TAB> stays local
	assert.Nil(t, r.Complete(context.Background(), "docker", []string{""}))
	assert.Nil(t, r.Complete(context.Background(), "docker", []string{"run", ""}))
	assert.Empty(t, fake.Calls, "short input must not invoke the external tool")
}

func TestRegistryBlankFlagValueStaysOpen(t *testing.T) {
	dir := t.TempDir()
	csproj := `<Project><PropertyGroup><TargetFramework>net8.0</TargetFramework></PropertyGroup></Project>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.csproj"), []byte(csproj), 0644))

	fake := execx.NewFakeCommander()
	r := NewRegistry(detectorWith("dotnet"), 2)
	r.Register(&DotnetCompleter{Cmd: fake, ProjectDir: dir})

	// A blank word after a flag asks for the flag's value
	got := r.Complete(context.Background(), "dotnet", []string{"build", "-f", ""})
	assert.Equal(t, []string{"net8.0"}, got)
	assert.Empty(t, fake.Calls)
}

func TestRegistryUnknownTool(t *testing.T) {
	r := NewRegistry(detectorWith(), 2)
	assert.Nil(t, r.Complete(context.Background(), "kubectl", []string{"get"}))
}

func TestRegistryAbsorbsCompleterFailure(t *testing.T) {
	fake := execx.NewFakeCommander().Fail("docker __complete contai", assert.AnError)
	r := NewRegistry(detectorWith("docker"), 2)
	r.Register(&DockerCompleter{Cmd: fake})

	assert.Nil(t, r.Complete(context.Background(), "docker", []string{"contai"}))
}

func TestDockerCompleter(t *testing.T) {
	fake := execx.NewFakeCommander().
		Respond("docker __complete contai", "container\tManage containers\ncontainers\n:4\n")

	r := NewRegistry(detectorWith("docker"), 2)
	r.Register(&DockerCompleter{Cmd: fake})

	got := r.Complete(context.Background(), "docker", []string{"contai"})
	assert.Equal(t, []string{"container", "containers"}, got)
}

func TestAzCompleter(t *testing.T) {
	fake := execx.NewFakeCommander().Respond("az", "storage\nstorage-mover\n")

	c := &AzCompleter{Cmd: fake}
	got, err := c.Complete(context.Background(), []string{"stor"})
	require.NoError(t, err)
	assert.Equal(t, []string{"storage", "storage-mover"}, got)
}

func TestDotnetCompleterDynamic(t *testing.T) {
	fake := execx.NewFakeCommander().
		Respond("dotnet complete --position 12 dotnet build", "build\nbuild-server\n")

	c := &DotnetCompleter{Cmd: fake}
	got, err := c.Complete(context.Background(), []string{"build"})
	require.NoError(t, err)
	assert.Equal(t, []string{"build", "build-server"}, got)
}

func TestDotnetCompleterFrameworksFromCsproj(t *testing.T) {
	dir := t.TempDir()
	csproj := `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <OutputType>Exe</OutputType>
    <TargetFrameworks>net8.0;net9.0</TargetFrameworks>
  </PropertyGroup>
</Project>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.csproj"), []byte(csproj), 0644))

	fake := execx.NewFakeCommander()
	c := &DotnetCompleter{Cmd: fake, ProjectDir: dir}

	got, err := c.Complete(context.Background(), []string{"build", "--framework", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"net8.0", "net9.0"}, got)
	assert.Empty(t, fake.Calls, "framework completion must stay offline")
}

func TestCsprojFrameworks(t *testing.T) {
	dir := t.TempDir()

	single := `<Project><PropertyGroup><TargetFramework>net8.0</TargetFramework></PropertyGroup></Project>`
	multi := `<Project><PropertyGroup><TargetFrameworks>net8.0; netstandard2.0</TargetFrameworks></PropertyGroup></Project>`
	broken := `<Project><PropertyGroup>`

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csproj"), []byte(single), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csproj"), []byte(multi), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.csproj"), []byte(broken), 0644))

	got, err := CsprojFrameworks(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"net8.0", "netstandard2.0"}, got)
}

func TestCsprojFrameworksEmptyDir(t *testing.T) {
	got, err := CsprojFrameworks(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}
