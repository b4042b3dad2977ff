package web

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/nurtureai/nurtureai/internal/report"
	"github.com/nurtureai/nurtureai/internal/service"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Table))

// resultPolicy admits formatting elements only. With no attributes allowed,
// verdict text can only occur in text nodes, which keeps the tag rewrite
// below from landing inside markup.
var resultPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "hr", "strong", "em", "b", "i", "del",
		"ul", "ol", "li", "blockquote", "code", "pre",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"table", "thead", "tbody", "tr", "th", "td",
	)
	return p
}()

var verdictTags = strings.NewReplacer(
	verdictText(report.VerdictSafe), verdictSpan(report.VerdictSafe),
	verdictText(report.VerdictNotSafe), verdictSpan(report.VerdictNotSafe),
)

func verdictText(v report.Verdict) string {
	glyph := report.SafeGlyph
	if v == report.VerdictNotSafe {
		glyph = report.UnsafeGlyph
	}
	return glyph + " " + v.Label()
}

func verdictSpan(v report.Verdict) string {
	return `<span class="` + verdictClass(v) + `">` + verdictText(v) + `</span>`
}

// resultHTML renders the main section of a result as sanitised markdown with
// verdict tags for categories that mark them.
func resultHTML(r *service.Result) template.HTML {
	text := r.Sections.Main
	if r.Category.MarksVerdicts() {
		text = report.Highlight(text)
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(text) + "</p>")
	}
	out := resultPolicy.Sanitize(buf.String())
	if r.Category.MarksVerdicts() {
		out = verdictTags.Replace(out)
	}
	return template.HTML(out)
}
