package content

import (
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Renderer converts markdown post bodies to HTML.
type Renderer struct {
	highlighter *Highlighter
}

// NewRenderer makes a markdown renderer with code highlighting.
func NewRenderer() *Renderer {
	return &Renderer{highlighter: NewHighlighter()}
}

// HTML renders markdown source to HTML.
func (r *Renderer) HTML(src string) string {
	// parser is stateful, make a new one per document
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(src))

	opts := mdhtml.RendererOptions{
		Flags:          mdhtml.CommonFlags | mdhtml.HrefTargetBlank,
		RenderNodeHook: r.codeHook,
	}
	return string(markdown.Render(doc, mdhtml.NewRenderer(opts)))
}

// Highlighter returns the code highlighter used for fenced blocks.
func (r *Renderer) Highlighter() *Highlighter { return r.highlighter }

// codeHook replaces fenced code blocks with highlighted markup.
func (r *Renderer) codeHook(w io.Writer, node ast.Node, _ bool) (ast.WalkStatus, bool) {
	block, ok := node.(*ast.CodeBlock)
	if !ok {
		return ast.GoToNext, false
	}
	var lang string
	if fields := strings.Fields(string(block.Info)); len(fields) > 0 {
		lang = fields[0]
	}
	_, _ = io.WriteString(w, r.highlighter.Code(string(block.Literal), lang))
	return ast.GoToNext, true
}
