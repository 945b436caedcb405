package document

import (
	"errors"
	"testing"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		source      string
		preamble    string
		frontMatter string
		body        string
	}{
		{
			name:        "delimiters at start",
			source:      "---\ntitle: API\n---\n# Intro\n",
			preamble:    "",
			frontMatter: "title: API",
			body:        "# Intro\n",
		},
		{
			name:        "leading blank lines",
			source:      "\n\n---\ntitle: API\n---\nbody",
			preamble:    "\n",
			frontMatter: "title: API",
			body:        "body",
		},
		{
			name:        "preamble text is kept apart",
			source:      "draft notes\n---\ntitle: API\n---\nbody",
			preamble:    "draft notes",
			frontMatter: "title: API",
			body:        "body",
		},
		{
			name:        "later rules stay in body",
			source:      "---\ntitle: API\n---\nabove\n---\nbelow\n",
			frontMatter: "title: API",
			body:        "above\n---\nbelow\n",
		},
		{
			name:        "CRLF line endings",
			source:      "---\r\ntitle: API\r\n---\r\nbody\r\n",
			frontMatter: "title: API",
			body:        "body\n",
		},
		{
			name:        "single delimiter keeps rest as front matter",
			source:      "---\ntitle: API\nsearch: true\n",
			frontMatter: "title: API\nsearch: true\n",
			body:        "",
		},
		{
			name:        "empty body",
			source:      "---\ntitle: API\n---\n",
			frontMatter: "title: API",
			body:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Split(tt.source)
			if err != nil {
				t.Fatalf("Split() unexpected error: %v", err)
			}
			if doc.Preamble != tt.preamble {
				t.Errorf("Preamble = %q, want %q", doc.Preamble, tt.preamble)
			}
			if doc.FrontMatter != tt.frontMatter {
				t.Errorf("FrontMatter = %q, want %q", doc.FrontMatter, tt.frontMatter)
			}
			if doc.Body != tt.body {
				t.Errorf("Body = %q, want %q", doc.Body, tt.body)
			}
		})
	}
}

func TestSplit_MissingDelimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
	}{
		{name: "empty", source: ""},
		{name: "plain markdown", source: "# Title\n\nHello"},
		{name: "dashes without newline", source: "title: API\n---"},
		{name: "longer rule", source: "----\ntitle: API\n----\n"},
		{name: "indented dashes", source: " ---\ntitle: API\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Split(tt.source)
			if !errors.Is(err, ErrMissingPageSettings) {
				t.Errorf("Split(%q) error = %v, want ErrMissingPageSettings", tt.source, err)
			}
		})
	}
}

func TestDocument_JoinRoundTrip(t *testing.T) {
	t.Parallel()

	sources := []string{
		"---\ntitle: API\n---\n# Intro\n",
		"\n\n---\ntitle: API\n\nlanguage_tabs:\n  - shell\n---\nbody\n---\nmore",
		"notes\n---\nincludes:\n  - errors\n---\n",
		"\n---\na: b\n---\nc",
		"---\nonly: front matter\n",
	}

	for _, src := range sources {
		doc, err := Split(src)
		if err != nil {
			t.Fatalf("Split(%q) unexpected error: %v", src, err)
		}
		if got := doc.Join(); got != src {
			t.Errorf("Join() = %q, want %q", got, src)
		}
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "a\nb", expected: "a\nb"},
		{input: "a\r\nb", expected: "a\nb"},
		{input: "a\rb", expected: "a\nb"},
		{input: "a\r\nb\rc\nd", expected: "a\nb\nc\nd"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		if got := NormalizeLineEndings(tt.input); got != tt.expected {
			t.Errorf("NormalizeLineEndings(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
