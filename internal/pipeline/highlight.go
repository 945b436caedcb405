package pipeline

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// scopeSeparator separates a scope qualifier from the language in a fence tag ("api>json").
const scopeSeparator = ">"

// Highlighter turns source code into highlighted HTML for the inside of a <code> element.
type Highlighter interface {
	Highlight(code, lang string) (string, error)
}

// ChromaHighlighter highlights with chroma using CSS classes, without a surrounding <pre>.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a highlighter for the named chroma style.
// Unknown style names fall back to chroma's default style.
func NewChromaHighlighter(style string) *ChromaHighlighter {
	return &ChromaHighlighter{
		style: styles.Get(style),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true), // Stylesheet comes from WriteCSS
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// Highlight highlights code as lang. For scoped tags ("scope>lang") only the language part
// selects the lexer. Unknown languages use chroma's fallback lexer.
func (h *ChromaHighlighter) Highlight(code, lang string) (string, error) {
	lexer := lexers.Get(HighlightLanguage(lang))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteCSS writes the stylesheet matching the classes Highlight emits.
func (h *ChromaHighlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}

// HighlightLanguage returns the language a fence tag is highlighted as:
// the second '>'-separated part when there is one, the whole tag otherwise.
func HighlightLanguage(tag string) string {
	parts := strings.Split(tag, scopeSeparator)
	if len(parts) >= 2 {
		return parts[1]
	}
	return tag
}

// StyleNames lists the available chroma styles.
func StyleNames() []string {
	return styles.Names()
}

// HasStyle reports whether name is a registered chroma style.
func HasStyle(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}
