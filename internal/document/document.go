// Package document splits a source document into its preamble, front matter and body.
package document

import (
	"errors"
	"regexp"
	"strings"
)

// Delimiter is the line that opens and closes the front matter block.
const Delimiter = "---"

// ErrMissingPageSettings indicates the document has no front matter delimiter.
var ErrMissingPageSettings = errors.New("missing page settings")

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Document holds the three regions of a source document.
// Preamble is kept for round-tripping only; the compiler ignores it.
type Document struct {
	Preamble    string
	FrontMatter string
	Body        string

	delimiters int  // delimiter lines found (1 or 2)
	atStart    bool // first delimiter opens the text
}

// Split locates the first two delimiter lines and returns the regions they bound.
// A delimiter is "---" at the start of the text or right after a newline, followed by a newline.
// With a single delimiter the front matter runs to the end of the text and the body is empty.
// Returns ErrMissingPageSettings when no delimiter is found.
func Split(source string) (Document, error) {
	source = NormalizeLineEndings(source)

	first, firstEnd := nextDelimiter(source, 0)
	if first < 0 {
		return Document{}, ErrMissingPageSettings
	}

	doc := Document{Preamble: source[:first], delimiters: 1, atStart: first == 0 && firstEnd == len(Delimiter)+1}

	second, secondEnd := nextDelimiter(source, firstEnd)
	if second < 0 {
		doc.FrontMatter = source[firstEnd:]
		return doc, nil
	}

	doc.FrontMatter = source[firstEnd:second]
	doc.Body = source[secondEnd:]
	doc.delimiters = 2
	return doc, nil
}

// Join reassembles the normalized source from its regions.
func (d Document) Join() string {
	var b strings.Builder
	b.WriteString(d.Preamble)
	if !d.atStart {
		b.WriteString("\n")
	}
	b.WriteString(Delimiter + "\n")
	b.WriteString(d.FrontMatter)
	if d.delimiters < 2 {
		return b.String()
	}
	b.WriteString("\n" + Delimiter + "\n")
	b.WriteString(d.Body)
	return b.String()
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// nextDelimiter finds the next delimiter at or after offset.
// It returns the index where the match starts (the preceding newline is not part of any region)
// and the index right after the delimiter's trailing newline, or -1, -1.
func nextDelimiter(s string, offset int) (start, end int) {
	const line = Delimiter + "\n"

	if offset == 0 && strings.HasPrefix(s, line) {
		return 0, len(line)
	}

	idx := strings.Index(s[offset:], "\n"+line)
	if idx < 0 {
		return -1, -1
	}
	idx += offset
	return idx, idx + 1 + len(line)
}
