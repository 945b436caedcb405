package metadata

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Kind identifies a block token.
type Kind int

// Token kinds, in the vocabulary of a block lexer.
const (
	KindParagraph Kind = iota
	KindText
	KindListStart
	KindListEnd
	KindListItemStart
	KindListItemEnd
	KindHeading
	KindCode
	KindHTML
	KindHR
	KindBlockquoteStart
	KindBlockquoteEnd
	KindSpace
)

var kindNames = [...]string{
	KindParagraph:       "paragraph",
	KindText:            "text",
	KindListStart:       "list_start",
	KindListEnd:         "list_end",
	KindListItemStart:   "list_item_start",
	KindListItemEnd:     "list_item_end",
	KindHeading:         "heading",
	KindCode:            "code",
	KindHTML:            "html",
	KindHR:              "hr",
	KindBlockquoteStart: "blockquote_start",
	KindBlockquoteEnd:   "blockquote_end",
	KindSpace:           "space",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Token is one block-level token. Text is set for blocks that carry content.
type Token struct {
	Kind Kind
	Text string
}

// blockParser is safe for concurrent use; goldmark parsers keep no per-parse state.
var blockParser = goldmark.DefaultParser()

// Lex parses src as markdown blocks and flattens the tree to a token stream in source order.
func Lex(src string) []Token {
	source := []byte(src)
	root := blockParser.Parse(text.NewReader(source))

	l := &lexer{source: source}
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		l.block(child)
	}
	return l.tokens
}

type lexer struct {
	source []byte
	tokens []Token
}

func (l *lexer) emit(kind Kind, txt string) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: txt})
}

func (l *lexer) block(n ast.Node) {
	switch n := n.(type) {
	case *ast.Paragraph:
		l.emit(KindParagraph, l.lines(n))
	case *ast.TextBlock:
		l.emit(KindText, l.lines(n))
	case *ast.List:
		l.emit(KindListStart, "")
		l.children(n)
		l.emit(KindListEnd, "")
	case *ast.ListItem:
		l.emit(KindListItemStart, "")
		l.children(n)
		l.emit(KindListItemEnd, "")
	case *ast.Heading:
		l.emit(KindHeading, l.lines(n))
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		l.emit(KindCode, l.lines(n))
	case *ast.HTMLBlock:
		l.emit(KindHTML, l.lines(n))
	case *ast.ThematicBreak:
		l.emit(KindHR, "")
	case *ast.Blockquote:
		l.emit(KindBlockquoteStart, "")
		l.children(n)
		l.emit(KindBlockquoteEnd, "")
	default:
		if n.HasChildren() {
			l.children(n)
			return
		}
		l.emit(KindSpace, "")
	}
}

func (l *lexer) children(n ast.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		l.block(child)
	}
}

// lines returns the raw source of a block, lines joined by newlines, trailing space trimmed.
func (l *lexer) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(l.source))
	}
	return strings.TrimRight(buf.String(), " \t\n")
}
