// Package report turns raw model text into the finished result shown to the
// user: it guarantees the medical disclaimer, separates the disclaimer block
// for layout, and locates the safe / not-safe verdict glyphs.
package report

import "strings"

const (
	// WarningGlyph opens the disclaimer block.
	WarningGlyph = "⚠️"
	SafeGlyph    = "✅"
	UnsafeGlyph  = "❌"
)

// Disclaimer is appended to every result that does not already contain it
// verbatim.
const Disclaimer = WarningGlyph + " Please consult a healthcare professional for personalized advice."

// Finish returns text with the disclaimer guaranteed present. The check is a
// plain substring match: a paraphrased disclaimer gets the literal appended.
func Finish(text string) string {
	if strings.Contains(text, Disclaimer) {
		return text
	}
	return text + "\n\n" + Disclaimer
}

// Sections is a finished result split for layout. Main+Disclaimer is always
// the text it was split from.
type Sections struct {
	Main       string
	Disclaimer string
}

// Split cuts text at the first WarningGlyph. Without a glyph everything is
// Main and Disclaimer is empty. Later glyphs stay inside Disclaimer.
func Split(text string) Sections {
	idx := strings.Index(text, WarningGlyph)
	if idx < 0 {
		return Sections{Main: text}
	}
	return Sections{Main: text[:idx], Disclaimer: text[idx:]}
}

func (s Sections) String() string {
	return s.Main + s.Disclaimer
}

// Verdict classifies a Segment.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictSafe
	VerdictNotSafe
)

// Label is the text shown inside a verdict tag.
func (v Verdict) Label() string {
	switch v {
	case VerdictSafe:
		return "SAFE"
	case VerdictNotSafe:
		return "NOT SAFE"
	default:
		return ""
	}
}

// Segment is a run of plain text, or a single verdict glyph when Verdict is
// not VerdictNone.
type Segment struct {
	Text    string
	Verdict Verdict
}

// Segments breaks text into plain runs and verdict glyphs, in order. Every
// glyph occurrence becomes its own segment; concatenating the Text fields
// gives back text.
func Segments(text string) []Segment {
	var out []Segment
	for text != "" {
		safe := strings.Index(text, SafeGlyph)
		unsafe := strings.Index(text, UnsafeGlyph)

		idx, glyph, verdict := -1, "", VerdictNone
		switch {
		case safe >= 0 && (unsafe < 0 || safe < unsafe):
			idx, glyph, verdict = safe, SafeGlyph, VerdictSafe
		case unsafe >= 0:
			idx, glyph, verdict = unsafe, UnsafeGlyph, VerdictNotSafe
		}

		if idx < 0 {
			out = append(out, Segment{Text: text})
			break
		}
		if idx > 0 {
			out = append(out, Segment{Text: text[:idx]})
		}
		out = append(out, Segment{Text: glyph, Verdict: verdict})
		text = text[idx+len(glyph):]
	}
	return out
}

var verdictReplacer = strings.NewReplacer(
	SafeGlyph, SafeGlyph+" "+VerdictSafe.Label(),
	UnsafeGlyph, UnsafeGlyph+" "+VerdictNotSafe.Label(),
)

// Highlight is the plain-text rendering of Segments: each glyph is followed by
// its label.
func Highlight(text string) string {
	return verdictReplacer.Replace(text)
}
