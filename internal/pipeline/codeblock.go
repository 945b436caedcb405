package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// HighlightClass prefixes the language in a highlighted block's class attribute.
const HighlightClass = "highlight"

// codeBlockPriority places the renderer ahead of goldmark's default HTML renderer (1000).
const codeBlockPriority = 200

// codeBlockExtension replaces goldmark's fenced code block rendering.
type codeBlockExtension struct {
	highlighter Highlighter
}

// NewCodeBlockExtension returns a goldmark extension that renders fenced code blocks as
// <pre><code class="highlight TAG">...</code></pre>, highlighting through h.
// TAG is the HTML-escaped fence language, so "api>json" becomes "api&gt;json";
// ApplyFixups later reduces it to the scope.
func NewCodeBlockExtension(h Highlighter) goldmark.Extender {
	return &codeBlockExtension{highlighter: h}
}

func (e *codeBlockExtension) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&codeBlockRenderer{highlighter: e.highlighter}, codeBlockPriority),
	))
}

type codeBlockRenderer struct {
	highlighter Highlighter
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	lang := n.Language(source)
	if len(lang) == 0 {
		_, _ = w.WriteString("<pre><code>")
		_, _ = w.Write(util.EscapeHTML(code.Bytes()))
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString(`<pre><code class="` + HighlightClass + " ")
	_, _ = w.Write(util.EscapeHTML(lang))
	_, _ = w.WriteString(`">`)

	highlighted, err := r.highlighter.Highlight(code.String(), string(lang))
	if err != nil {
		_, _ = w.Write(util.EscapeHTML(code.Bytes()))
	} else {
		_, _ = w.WriteString(highlighted)
	}
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}
