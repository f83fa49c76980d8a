package render

import (
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// newMarkdown builds the shared goldmark instance: GFM tables and strike,
// typographic punctuation, auto heading anchors, and class-based chroma
// highlighting for fenced code blocks.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
}

// newSanitizer returns the policy applied to all markdown HTML before it
// reaches a browser surface. UGC policy plus the class attributes chroma
// and goldmark emit.
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-zA-Z0-9\s_-]+$`)).
		OnElements("span", "code", "pre", "div")
	p.AllowAttrs("id").Matching(regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)).
		OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return p
}

func (r *Renderer) renderMarkdown(name, content string) (Result, error) {
	var buf strings.Builder
	if err := r.markdown.Convert([]byte(content), &buf); err != nil {
		return Result{}, &Error{
			File:     name,
			Strategy: "markdown",
			Message:  "markdown parsing failed",
			Err:      fmt.Errorf("markdown parsing failed: %w", err),
		}
	}
	return Result{
		Kind:     KindMarkdown,
		FileName: name,
		Icon:     "≡",
		Raw:      content,
		HTML:     r.sanitizer.Sanitize(buf.String()),
	}, nil
}
