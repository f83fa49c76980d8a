package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// defaultImageDir is where bare image filenames resolve when the file body
// does not carry an explicit path or URL.
const defaultImageDir = "content/images"

// strategy pairs a suffix predicate with a render func. Strategies are
// consulted in declaration order and the first match wins.
type strategy struct {
	name   string
	match  func(name string) bool
	render func(r *Renderer, name, content string) (Result, error)
}

// Renderer selects and runs rendering strategies. Construct with New; the
// zero value is not usable.
type Renderer struct {
	markdown   goldmark.Markdown
	sanitizer  *bluemonday.Policy
	strategies []strategy
}

// New returns a Renderer with the full strategy list in priority order.
func New() *Renderer {
	r := &Renderer{
		markdown:  newMarkdown(),
		sanitizer: newSanitizer(),
	}
	r.strategies = []strategy{
		{"markdown", suffixMatch(".md", ".markdown"), (*Renderer).renderMarkdown},
		{"json", suffixMatch(".json"), (*Renderer).renderJSON},
		{"yaml", suffixMatch(".yml", ".yaml"), (*Renderer).renderYAML},
		{"link", suffixMatch(".link"), (*Renderer).renderLink},
		{"image", suffixMatch(".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp"), (*Renderer).renderImage},
		{"shell", suffixMatch(".sh", ".bash"), sourceStrategy("bash", KindShellScript, "⚡")},
		{"javascript", suffixMatch(".js", ".jsx"), sourceStrategy("javascript", KindSourceCode, "⟨⟩")},
		{"typescript", suffixMatch(".ts", ".tsx"), sourceStrategy("typescript", KindSourceCode, "⟨⟩")},
		{"python", suffixMatch(".py"), sourceStrategy("python", KindSourceCode, "⟨⟩")},
		{"css", suffixMatch(".css", ".scss", ".sass"), sourceStrategy("css", KindSourceCode, "⟨⟩")},
		{"text", func(string) bool { return true }, (*Renderer).renderPlainText},
	}
	return r
}

func suffixMatch(exts ...string) func(string) bool {
	return func(name string) bool {
		lower := strings.ToLower(name)
		for _, ext := range exts {
			if strings.HasSuffix(lower, ext) {
				return true
			}
		}
		return false
	}
}

// sourceStrategy builds a highlight-only render func for a fixed grammar.
// Source results are deferrable.
func sourceStrategy(language string, kind Kind, icon string) func(*Renderer, string, string) (Result, error) {
	return func(r *Renderer, name, content string) (Result, error) {
		html, err := highlight(content, language)
		if err != nil {
			return Result{}, &Error{
				File:     name,
				Strategy: language,
				Message:  fmt.Sprintf("%s highlighting failed", language),
				Err:      err,
			}
		}
		return Result{
			Kind:       kind,
			FileName:   name,
			Icon:       icon,
			Raw:        content,
			HTML:       html,
			Language:   language,
			Deferrable: true,
		}, nil
	}
}

// StrategyFor returns the name of the strategy that would handle the file.
// It never fails: the plain-text fallback matches everything.
func (r *Renderer) StrategyFor(name string) string {
	for _, s := range r.strategies {
		if s.match(name) {
			return s.name
		}
	}
	return "text"
}

// Render runs the first matching strategy over the file content. A failed
// strategy returns a *Error; it never panics and never falls through to a
// later strategy.
func (r *Renderer) Render(name, content string) (Result, error) {
	for _, s := range r.strategies {
		if s.match(name) {
			return s.render(r, name, content)
		}
	}
	return r.renderPlainText(name, content)
}

// --- JSON ---

func (r *Renderer) renderJSON(name, content string) (Result, error) {
	if !json.Valid([]byte(content)) {
		return Result{}, &Error{
			File:     name,
			Strategy: "json",
			Message:  "Invalid JSON",
		}
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(content), "", "  "); err != nil {
		return Result{}, &Error{
			File:     name,
			Strategy: "json",
			Message:  "Invalid JSON",
			Err:      err,
		}
	}
	html, err := highlight(pretty.String(), "json")
	if err != nil {
		return Result{}, &Error{File: name, Strategy: "json", Message: "json highlighting failed", Err: err}
	}
	return Result{
		Kind:     KindJSON,
		FileName: name,
		Icon:     "⚙",
		Raw:      content,
		Pretty:   pretty.String(),
		HTML:     html,
	}, nil
}

// --- YAML ---

func (r *Renderer) renderYAML(name, content string) (Result, error) {
	html, err := highlight(content, "yaml")
	if err != nil {
		return Result{}, &Error{File: name, Strategy: "yaml", Message: "yaml highlighting failed", Err: err}
	}
	return Result{
		Kind:       KindYAML,
		FileName:   name,
		Icon:       "⚙",
		Raw:        content,
		HTML:       html,
		Deferrable: true,
	}, nil
}

// --- links ---

func (r *Renderer) renderLink(name, content string) (Result, error) {
	target := strings.TrimSpace(content)
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Result{}, &Error{
			File:     name,
			Strategy: "link",
			Message:  "invalid URL format",
			Err:      err,
		}
	}
	return Result{
		Kind:      KindExternalLink,
		FileName:  name,
		Icon:      classifyLink(name).Icon(),
		Raw:       content,
		URL:       u.String(),
		LinkClass: classifyLink(name),
	}, nil
}

// classifyLink keys on filename substrings, not the URL itself.
func classifyLink(name string) LinkClass {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "github"):
		return LinkGitHub
	case strings.Contains(lower, "launch"):
		return LinkLiveSite
	default:
		return LinkExternal
	}
}

// --- images ---

func (r *Renderer) renderImage(name, content string) (Result, error) {
	src := strings.TrimSpace(content)
	if src == "" {
		src = path.Join(defaultImageDir, path.Base(name))
	}
	return Result{
		Kind:     KindImage,
		FileName: name,
		Icon:     "⬡",
		Raw:      content,
		URL:      src,
	}, nil
}

// --- plain text ---

func (r *Renderer) renderPlainText(name, content string) (Result, error) {
	return Result{
		Kind:     KindPlainText,
		FileName: name,
		Icon:     "·",
		Raw:      content,
	}, nil
}
