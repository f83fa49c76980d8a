package tui

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"

	"termfolio/render"
)

// formatResult turns a typed render result into ANSI text for the
// scrollback. It never fails; anything it cannot dress up falls back to
// the raw content.
func formatResult(r *render.Result, width int) string {
	switch r.Kind {
	case render.KindMarkdown:
		return renderMarkdown(r.Raw, width)
	case render.KindJSON:
		if out := highlightANSI(r.Pretty, "json"); out != "" {
			return out
		}
		return r.Pretty
	case render.KindYAML:
		if out := highlightANSI(r.Raw, "yaml"); out != "" {
			return out
		}
		return r.Raw
	case render.KindShellScript, render.KindSourceCode:
		if out := highlightANSI(r.Raw, r.Language); out != "" {
			return out
		}
		return r.Raw
	case render.KindImage:
		return fmt.Sprintf("%s %s (%s)", r.Icon, r.FileName, r.URL)
	case render.KindExternalLink:
		return fmt.Sprintf("%s %s: %s", r.Icon, r.LinkClass, r.URL)
	default:
		return r.Raw
	}
}

func renderMarkdown(markdown string, width int) string {
	if width < 24 {
		width = 24
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(out, "\n")
}

func highlightANSI(text, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	style := styles.Get("nord")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return ""
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}

// openBrowser performs the external open side effect for link files.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}
