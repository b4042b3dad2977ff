package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/nurtureai/nurtureai/internal/report"
	"github.com/nurtureai/nurtureai/internal/service"
)

var (
	safeColor   = successColor
	unsafeColor = errorColor
)

// PrintResult renders a finished analysis for the terminal: verdict-tagged
// main content, the disclaimer block, and the follow-up links.
func PrintResult(w io.Writer, r *service.Result) {
	PrintBold(w, "📝 Analysis Results: %s", r.Category.Label())
	fmt.Fprintln(w)

	var b strings.Builder
	for _, seg := range r.MainSegments() {
		switch seg.Verdict {
		case report.VerdictSafe:
			b.WriteString(safeColor.Sprint(seg.Text + " " + seg.Verdict.Label()))
		case report.VerdictNotSafe:
			b.WriteString(unsafeColor.Sprint(seg.Text + " " + seg.Verdict.Label()))
		default:
			b.WriteString(seg.Text)
		}
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), "\n"))

	if r.Sections.Disclaimer != "" {
		fmt.Fprintln(w)
		PrintWarning(w, "%s", r.Sections.Disclaimer)
	}

	fmt.Fprintln(w)
	PrintInfo(w, "Share on WhatsApp: %s", r.ShareLink)
	if r.ChatLink != "" {
		PrintInfo(w, "Chat with NurtureAI: %s", r.ChatLink)
	}
}
