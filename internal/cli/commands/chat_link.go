package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nurtureai/nurtureai/internal/cli/ui"
	"github.com/nurtureai/nurtureai/internal/config"
	"github.com/nurtureai/nurtureai/internal/links"
)

var chatLinkCmd = &cobra.Command{
	Use:   "chat-link",
	Short: "print the WhatsApp chat link",
	Long: `Print the WhatsApp link to the configured NurtureAI chat number
(WHATSAPP_CHAT_NUMBER), prefilled with WHATSAPP_CHAT_GREETING.`,
	Args: cobra.NoArgs,
	RunE: runChatLink,
}

func init() {
	chatLinkCmd.SilenceUsage = true
}

func runChatLink(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	cfg := config.Load()

	lb, err := links.NewBuilder(cfg.ChatNumber, cfg.ChatGreeting)
	if err != nil {
		ui.PrintError(out, "%v", err)
		return fmt.Errorf("invalid chat configuration")
	}

	link := lb.ChatLink()
	if link == "" {
		ui.PrintWarning(out, "⚠️ No chat number configured. Set WHATSAPP_CHAT_NUMBER to enable the chat link")
		return fmt.Errorf("chat link not configured")
	}
	fmt.Fprintln(out, link)
	return nil
}
