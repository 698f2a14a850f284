package cli

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/spry/pkg/errors"
	"github.com/arthur-debert/spry/pkg/style"
)

//go:embed docs/*.md
var docsFS embed.FS

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Read the built-in documentation",
		Long: `Docs renders the built-in documentation topics as formatted terminal
output. Without a topic it lists what is available.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: docTopics(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), style.TitleStyle.Render("Available topics"))
				for _, topic := range docTopics() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", topic)
				}
				return nil
			}

			content, err := docsFS.ReadFile("docs/" + args[0] + ".md")
			if err != nil {
				return errors.Newf(errors.ErrNotFound, "no such topic: %s", args[0])
			}

			fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(string(content)))
			return nil
		},
	}
}

func docTopics() []string {
	entries, err := docsFS.ReadDir("docs")
	if err != nil {
		return nil
	}
	topics := make([]string, 0, len(entries))
	for _, e := range entries {
		topics = append(topics, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(topics)
	return topics
}

// renderMarkdown falls back to the raw text when the terminal cannot
// do styled output.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
