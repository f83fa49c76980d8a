// Package render turns raw file bytes into typed, displayable results. A
// fixed, ordered list of strategies is keyed on filename suffix; the first
// matching strategy wins, and the plain-text fallback always matches last,
// so exactly one strategy handles any file.
package render

import "fmt"

// Kind tags a Result with the strategy that produced it.
type Kind int

const (
	KindMarkdown Kind = iota
	KindJSON
	KindYAML
	KindShellScript
	KindSourceCode
	KindImage
	KindExternalLink
	KindPlainText
)

func (k Kind) String() string {
	switch k {
	case KindMarkdown:
		return "markdown"
	case KindJSON:
		return "json"
	case KindYAML:
		return "yaml"
	case KindShellScript:
		return "shell"
	case KindSourceCode:
		return "source"
	case KindImage:
		return "image"
	case KindExternalLink:
		return "link"
	default:
		return "text"
	}
}

// LinkClass classifies an external-link result, derived from filename
// substring matches.
type LinkClass int

const (
	LinkExternal LinkClass = iota
	LinkGitHub
	LinkLiveSite
)

func (c LinkClass) String() string {
	switch c {
	case LinkGitHub:
		return "GitHub"
	case LinkLiveSite:
		return "Live Site"
	default:
		return "External Link"
	}
}

// Icon returns the display icon for the link class.
func (c LinkClass) Icon() string {
	switch c {
	case LinkGitHub:
		return "🐙"
	case LinkLiveSite:
		return "🚀"
	default:
		return "🔗"
	}
}

// Result is the structured output of a rendering strategy. Kind selects
// which payload fields are meaningful.
type Result struct {
	Kind     Kind
	FileName string
	Icon     string

	// Raw is the original content, always populated.
	Raw string

	// HTML holds sanitized markdown HTML, or highlighted HTML for JSON,
	// YAML, shell, and source-code results.
	HTML string

	// Pretty is the stable 2-space pretty-printed form (JSON only).
	Pretty string

	// Language is the highlighting grammar used (shell/source only).
	Language string

	// URL is the validated target for links, or the resolved source for
	// images.
	URL string

	// LinkClass classifies external-link results.
	LinkClass LinkClass

	// Deferrable marks non-critical content the UI may lazy-reveal until
	// visible. Markdown, plain text, and JSON are critical and never
	// deferrable; deferral never changes the eventual output.
	Deferrable bool
}

// Error is a typed rendering failure naming the file and the strategy that
// failed. It is reported to the user as a distinct error block; it is never
// fatal to the session.
type Error struct {
	File     string
	Strategy string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.File, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}
