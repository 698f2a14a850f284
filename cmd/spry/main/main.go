package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/spry/internal/cli"
	"github.com/arthur-debert/spry/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
