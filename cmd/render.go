package cmd

import (
	"strings"

	"github.com/Laisky/errors/v2"
	termmd "github.com/MichaelMure/go-term-markdown"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
)

// Output formats accepted by --format.
const (
	formatMarkdown = "markdown"
	formatHTML     = "html"
	formatTerminal = "terminal"
)

const (
	terminalWidth  = 80
	terminalIndent = 2
)

// renderOutput converts a markdown document into the requested format.
func renderOutput(text, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", formatMarkdown:
		return text, nil
	case formatHTML:
		return markdownToHTML(text), nil
	case formatTerminal:
		return string(termmd.Render(text, terminalWidth, terminalIndent)), nil
	default:
		return "", errors.Errorf("unknown format %q, want one of [%s, %s, %s]",
			format, formatMarkdown, formatHTML, formatTerminal)
	}
}

func markdownToHTML(md string) string {
	opts := html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank}
	renderer := html.NewRenderer(opts)
	return string(markdown.ToHTML([]byte(md), nil, renderer))
}
