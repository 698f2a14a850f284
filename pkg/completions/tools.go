package completions

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/spry/pkg/execx"
)

// AzCompleter completes Azure CLI commands through the argcomplete
// protocol the az entry point speaks: the partial line goes in via
// COMP_LINE/COMP_POINT and candidates come back one per line.
type AzCompleter struct {
	Cmd execx.Commander
}

// Tool implements Completer.
func (a *AzCompleter) Tool() string { return "az" }

// Complete implements Completer.
func (a *AzCompleter) Complete(ctx context.Context, words []string) ([]string, error) {
	line := "az " + strings.Join(words, " ")
	out, err := a.Cmd.RunWithEnv(ctx, map[string]string{
		"_ARGCOMPLETE":     "1",
		"COMP_LINE":        line,
		"COMP_POINT":       fmt.Sprintf("%d", len(line)),
		"_ARGCOMPLETE_IFS": "\n",
	}, "az")
	if err != nil {
		return nil, err
	}
	return splitCandidates(out), nil
}

// DotnetCompleter completes dotnet CLI commands via `dotnet complete`.
// Framework flags are completed offline from the project file instead,
// see CsprojFrameworks.
type DotnetCompleter struct {
	Cmd execx.Commander

	// ProjectDir is where csproj files are searched for framework
	// completions; empty means the current directory.
	ProjectDir string
}

// Tool implements Completer.
func (d *DotnetCompleter) Tool() string { return "dotnet" }

// Complete implements Completer.
func (d *DotnetCompleter) Complete(ctx context.Context, words []string) ([]string, error) {
	// -f/--framework completes from the csproj on disk, no process call
	if len(words) >= 2 {
		prev := words[len(words)-2]
		if prev == "-f" || prev == "--framework" {
			return CsprojFrameworks(d.ProjectDir)
		}
	}

	line := "dotnet " + strings.Join(words, " ")
	out, err := d.Cmd.Run(ctx, "dotnet", "complete", "--position", fmt.Sprintf("%d", len(line)), line)
	if err != nil {
		return nil, err
	}
	return splitCandidates(out), nil
}

// DockerCompleter completes docker commands via the cobra __complete
// convention: candidates one per line, a :directive line last.
type DockerCompleter struct {
	Cmd execx.Commander
}

// Tool implements Completer.
func (d *DockerCompleter) Tool() string { return "docker" }

// Complete implements Completer.
func (d *DockerCompleter) Complete(ctx context.Context, words []string) ([]string, error) {
	args := append([]string{"__complete"}, words...)
	out, err := d.Cmd.Run(ctx, "docker", args...)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, line := range splitCandidates(out) {
		if strings.HasPrefix(line, ":") {
			continue
		}
		// cobra may append a tab-separated description
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			line = line[:i]
		}
		candidates = append(candidates, line)
	}
	return candidates, nil
}

func splitCandidates(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
