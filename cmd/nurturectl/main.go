package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/nurtureai/nurtureai/internal/cli/commands"
	"github.com/nurtureai/nurtureai/internal/cli/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		if strings.Contains(err.Error(), "unknown command") {
			ui.PrintError(os.Stderr, "%s", err)
			fmt.Fprintln(os.Stderr, "\nRun 'nurturectl --help' for usage.")
		}
		os.Exit(1)
	}
}
