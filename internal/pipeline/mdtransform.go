package pipeline

import (
	"context"
	"regexp"

	"github.com/alnah/go-slate/internal/document"
)

// Precompiled regex patterns for performance.
var (
	// Fence openers tagged "shell"; chroma and older highlighters expect "bash".
	shellFence = regexp.MustCompile("```shell\\b")

	// Fixup 1: attributes on <code> directly inside <pre> move to <pre>.
	preCodeAttrs = regexp.MustCompile(`pre><code([^>]+)`)

	// Fixup 2: "highlight scope&gt;lang" keeps only "highlight scope".
	highlightSuffix = regexp.MustCompile(`class="highlight ([^&"]+)&([^"]+)"`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// SlatePreprocessor prepares assembled Slate markdown for conversion.
type SlatePreprocessor struct{}

// PreprocessMarkdown normalizes line endings and rewrites ```shell fences to ```bash.
func (p *SlatePreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = document.NormalizeLineEndings(content)
	content = RewriteShellFences(content)
	return content
}

// RewriteShellFences replaces the fence language "shell" with "bash".
// Longer tags that merely start with "shell" are left alone.
func RewriteShellFences(content string) string {
	return shellFence.ReplaceAllString(content, "```bash")
}

// Assemble concatenates the body and the include fragments in declaration order.
// No separators are added between parts.
func Assemble(body string, fragments []string) string {
	n := len(body)
	for _, f := range fragments {
		n += len(f)
	}

	buf := make([]byte, 0, n)
	buf = append(buf, body...)
	for _, f := range fragments {
		buf = append(buf, f...)
	}
	return string(buf)
}

// ApplyFixups applies the post-conversion rewrites in order:
// code attributes move onto the enclosing <pre>, then scoped highlight classes drop
// their escaped "&gt;lang" suffix.
func ApplyFixups(html string) string {
	html = MoveCodeAttributes(html)
	html = StripHighlightSuffix(html)
	return html
}

// MoveCodeAttributes moves the attribute string of a <code> that opens right after <pre>
// onto the <pre> element.
func MoveCodeAttributes(html string) string {
	return preCodeAttrs.ReplaceAllString(html, "pre$1><code")
}

// StripHighlightSuffix reduces class="highlight X&Y" to class="highlight X".
func StripHighlightSuffix(html string) string {
	return highlightSuffix.ReplaceAllString(html, `class="highlight $1"`)
}
