// Package links builds the WhatsApp deep links offered next to a result.
package links

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nurtureai/nurtureai/internal/domain"
)

const waBase = "https://wa.me/"

// Builder builds share and chat links. The chat destination is configured
// once; an empty destination disables the chat link.
type Builder struct {
	chatNumber   string
	chatGreeting string
}

// NewBuilder validates the chat destination. number may carry a leading "+"
// and must otherwise be digits; it is stored without the "+" as wa.me expects.
func NewBuilder(number, greeting string) (*Builder, error) {
	number = strings.TrimPrefix(strings.TrimSpace(number), "+")
	for _, r := range number {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("invalid chat number %q: digits only", number)
		}
	}
	return &Builder{chatNumber: number, chatGreeting: greeting}, nil
}

// ShareLink returns a link that opens WhatsApp's contact picker with text as
// the message body.
func (b *Builder) ShareLink(text string) string {
	return waBase + "?text=" + escape(text)
}

// ShareMessage is the body used when sharing a finished result.
func ShareMessage(category domain.Category, result string) string {
	return fmt.Sprintf("NurtureAI Analysis Results for %s:\n\n%s", category.Subject(), result)
}

// ChatLink returns the link to the configured chat destination, or "" when
// none is configured.
func (b *Builder) ChatLink() string {
	if b.chatNumber == "" {
		return ""
	}
	return waBase + b.chatNumber + "?text=" + escape(b.chatGreeting)
}

// escape is query-component escaping with spaces as %20 rather than "+",
// which WhatsApp would show literally. A literal "+" is already %2B.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
