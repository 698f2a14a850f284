package cli

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/spry/pkg/capability"
	"github.com/arthur-debert/spry/pkg/config"
	"github.com/arthur-debert/spry/pkg/hooks"
	"github.com/arthur-debert/spry/pkg/prompt"
	"github.com/arthur-debert/spry/pkg/style"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the environment spry sees",
		Long: `Status reports which external tools are installed, whether the hook
scripts are in place and whether the prompt engine and theme resolve.
Missing optional tools are normal: the features they back simply stay
off.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}
			printStatus(sess)
			return nil
		},
	}
}

func printStatus(sess *session) {
	pterm.DefaultSection.Println("Tools")
	rows := pterm.TableData{{"", "Tool", "Path"}}
	for _, tool := range capability.AllTools() {
		st := style.StatusPresent
		path := sess.detector.Path(tool)
		if !sess.detector.Has(tool) {
			st = style.StatusAbsent
			path = ""
		}
		rows = append(rows, []string{
			style.StatusStyle(st).Sprint(style.Glyph(st)),
			tool,
			path,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	pterm.DefaultSection.Println("Configuration")
	printFileRow("config file", config.UserConfigPath(sess.paths.ConfigDir()), "built-in defaults in use")
	for _, sh := range hooks.SupportedShells {
		printFileRow(sh+" hook script", sess.paths.HookScriptPath(sh), "not installed, run 'spry hook install'")
	}
	fmt.Printf("  log file: %s\n", sess.paths.LogFilePath())

	pterm.DefaultSection.Println("Prompt")
	engineStatus := style.StatusPresent
	if !sess.detector.Has(sess.cfg.Prompt.Engine) {
		engineStatus = style.StatusAbsent
	}
	fmt.Printf("  %s engine: %s\n",
		style.StatusStyle(engineStatus).Sprint(style.Glyph(engineStatus)), sess.cfg.Prompt.Engine)
	if sess.cfg.Prompt.Theme != "" {
		themeStatus := style.StatusPresent
		note := sess.cfg.Prompt.Theme
		if err := prompt.ValidateTheme(sess.cfg.Prompt.Theme); err != nil {
			themeStatus = style.StatusAbsent
			note = fmt.Sprintf("%s (%v)", sess.cfg.Prompt.Theme, err)
		}
		fmt.Printf("  %s theme: %s\n",
			style.StatusStyle(themeStatus).Sprint(style.Glyph(themeStatus)), note)
	}
}

func printFileRow(label, path, missingNote string) {
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("  %s %s: %s\n",
			style.StatusStyle(style.StatusPresent).Sprint(style.Glyph(style.StatusPresent)), label, path)
	} else {
		fmt.Printf("  %s %s: %s\n",
			style.StatusStyle(style.StatusDisabled).Sprint(style.Glyph(style.StatusDisabled)), label, missingNote)
	}
}
