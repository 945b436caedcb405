package metadata

import "strings"

// scalarSeparator splits a scalar paragraph into key and value.
const scalarSeparator = ": "

type walkState int

const (
	stateScanning walkState = iota
	stateInList
)

func (s walkState) String() string {
	if s == stateInList {
		return "inList"
	}
	return "scanning"
}

// walker holds the state of one pass over a token stream.
// list is the current list name; it is only reassigned by a list-introducing paragraph.
type walker struct {
	tokens []Token
	pos    int
	state  walkState
	list   string
	meta   *Metadata
}

// Parse lexes front matter and walks the resulting tokens.
func Parse(frontMatter string) *Metadata {
	return Walk(Lex(frontMatter))
}

// Walk builds Metadata from a block token stream in a single pass.
func Walk(tokens []Token) *Metadata {
	w := &walker{tokens: tokens, meta: New()}
	for w.pos < len(w.tokens) {
		w.step()
	}
	return w.meta
}

func (w *walker) peek(offset int) (Token, bool) {
	i := w.pos + offset
	if i >= len(w.tokens) {
		return Token{}, false
	}
	return w.tokens[i], true
}

func (w *walker) step() {
	tok := w.tokens[w.pos]

	switch tok.Kind {
	case KindParagraph:
		if next, ok := w.peek(1); ok && next.Kind == KindListStart {
			w.enterList(strings.TrimSuffix(tok.Text, ":"))
			w.pos += 2
			return
		}
		key, value := splitScalar(tok.Text)
		w.meta.Set(key, value)

	case KindListItemStart:
		if w.state == stateInList {
			item := ""
			if body, ok := w.peek(1); ok {
				item = body.Text
			}
			w.appendItem(item)
			w.pos += 2
			return
		}
	}

	w.pos++
}

func (w *walker) enterList(name string) {
	w.state = stateInList
	w.list = name
	w.meta.SetList(name)
}

func (w *walker) appendItem(item string) {
	if w.list == LanguageTabsKey && item == "shell" {
		item = "bash"
	}
	w.meta.Append(w.list, item)
}

// splitScalar splits on the first ": ". Without a separator the whole text is the key
// and the value is empty.
func splitScalar(s string) (key, value string) {
	key, value, _ = strings.Cut(s, scalarSeparator)
	return key, value
}
