// Package markdown renders user text for display. Stored text stays as typed;
// only the HTML sent to clients goes through here.
package markdown

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New builds a renderer for a small markdown subset: paragraphs, fenced code,
// code spans, emphasis and strikethrough. Raw HTML and links are not parsed,
// so anything tag-like is shown escaped.
func New() *Renderer {
	p := parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
	)

	md := goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithExtensions(extension.Strikethrough),
	)

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(false)

	return &Renderer{md: md, policy: policy}
}

// Render returns sanitized HTML for text. On a render failure the text is
// escaped as-is.
func (r *Renderer) Render(text string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return r.policy.Sanitize("<p>" + escape(text) + "</p>")
	}
	return r.policy.Sanitize(strings.TrimSpace(buf.String()))
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
