package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nurtureai/nurtureai/internal/cli/ui"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "nurturectl",
	Short:   "NurtureAI safety checks from the terminal",
	Version: version,
	Long: `Check whether a food, medicine, or cosmetic product is safe during pregnancy
or breastfeeding, or estimate the calories in a meal, from a photo.

The vision backend and chat link are configured through the same environment
variables (or .env file) as the NurtureAI server.`,
	Example: `  # Check a food item as a regular user
  $ nurturectl analyze --category food --image cheese.jpg

  # Professional-level check with a question
  $ nurturectl analyze -c drug --pro -i label.png -q "Safe while breastfeeding?"

  # Print the chat link
  $ nurturectl chat-link`,
}

// Execute executes the root command
func Execute() error {
	rootCmd.SetVersionTemplate(fmt.Sprintf("nurturectl version %s\n", version))
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(chatLinkCmd)

	rootCmd.SetUsageTemplate(usageTemplate())
	rootCmd.SetHelpTemplate(usageTemplate())
}

func usageTemplate() string {
	return `{{if .Long}}{{.Long}}

{{end}}` + ui.Bold("USAGE") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasExample}}` + ui.Bold("EXAMPLES") + `
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}` + ui.Bold("COMMANDS") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}` + ui.Bold("OPTIONS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}
