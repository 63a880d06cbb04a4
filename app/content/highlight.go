package content

import (
	"bytes"
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter provides syntax highlighting for fenced code blocks.
type Highlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewHighlighter creates a new Highlighter instance.
func NewHighlighter() *Highlighter {
	// use a minimal style since we're using CSS classes
	style := styles.Get("monokailight")
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		// use CSS classes for theme-aware styling
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(false),
			chromahtml.WithLineNumbers(false),
		),
		style: style,
	}
}

// Code applies syntax highlighting to code in the given language.
// returns plain escaped block if language is empty or unknown, or highlighting fails.
func (h *Highlighter) Code(code, lang string) string {
	plain := "<pre><code>" + html.EscapeString(code) + "</code></pre>"
	lang = strings.TrimSpace(lang)
	if lang == "" || lang == "text" {
		return plain
	}

	lexer := lexers.Get(lang)
	if lexer == nil {
		return plain
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plain
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return plain
	}
	return buf.String()
}

// WriteCSS writes the stylesheet for highlighted blocks.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style) //nolint:wrapcheck // formatter error is descriptive
}
