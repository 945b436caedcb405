package slate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Input contains compile parameters for one document.
type Input struct {
	Markdown   string // Document text: preamble, front matter, body (required)
	Template   string // Page layout source for html/template (required)
	DocumentID string // Passed to the include loader, typically the document path

	// ContentFilter, if set, rewrites the rendered HTML before it reaches the layout.
	// The CLI uses it to rebase relative links when the page is written elsewhere.
	ContentFilter func(html string) (string, error)
}

// Result holds the compiled page and the intermediate values it was built from.
type Result struct {
	Page     string         // Final page text
	Metadata map[string]any // Front matter fields: string or []string
	Content  string         // Rendered HTML handed to the layout as "content"
}

// IncludeLoader fetches the markdown body of a named include.
// Implementations may block; ctx is canceled when the compile gives up.
type IncludeLoader interface {
	Load(ctx context.Context, name, documentID string) (string, error)
}

// IncludeLoaderFunc adapts a function to IncludeLoader.
type IncludeLoaderFunc func(ctx context.Context, name, documentID string) (string, error)

// Load calls f.
func (f IncludeLoaderFunc) Load(ctx context.Context, name, documentID string) (string, error) {
	return f(ctx, name, documentID)
}

// Highlighter renders a fenced code block body as HTML for the inside of <code>.
// lang is the raw fence tag, possibly scoped ("api>json").
type Highlighter interface {
	Highlight(code, lang string) (string, error)
}

// IncludePolicy decides what a failed include does to the compile.
type IncludePolicy int

// Include policies.
const (
	// IncludesDegrade replaces a failed include with an empty fragment and logs a warning.
	IncludesDegrade IncludePolicy = iota
	// IncludesStrict fails the compile on any include error.
	IncludesStrict
)

func (p IncludePolicy) String() string {
	switch p {
	case IncludesDegrade:
		return "degrade"
	case IncludesStrict:
		return "strict"
	default:
		return fmt.Sprintf("IncludePolicy(%d)", int(p))
	}
}

// ParseIncludePolicy parses "degrade" or "strict" (case-insensitive). Empty means degrade.
func ParseIncludePolicy(s string) (IncludePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "degrade":
		return IncludesDegrade, nil
	case "strict":
		return IncludesStrict, nil
	default:
		return IncludesDegrade, fmt.Errorf("%w: %q (must be degrade or strict)", ErrInvalidIncludePolicy, s)
	}
}

// Option configures a Compiler.
type Option func(*Compiler)

// compilerConfig holds internal configuration for Compiler.
type compilerConfig struct {
	loader         IncludeLoader
	policy         IncludePolicy
	includeTimeout time.Duration
	logger         *slog.Logger
	style          string
	highlighter    Highlighter
}

// WithIncludeLoader sets the loader for names listed under "includes".
// Without one, every include resolves to an empty fragment.
func WithIncludeLoader(l IncludeLoader) Option {
	return func(c *Compiler) {
		c.cfg.loader = l
	}
}

// WithIncludePolicy sets the include failure policy.
func WithIncludePolicy(p IncludePolicy) Option {
	return func(c *Compiler) {
		c.cfg.policy = p
	}
}

// WithIncludeTimeout bounds the time spent waiting for all includes of one compile.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithIncludeTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("slate: WithIncludeTimeout duration must be positive")
	}
	return func(c *Compiler) {
		c.cfg.includeTimeout = d
	}
}

// WithLogger sets the logger that receives degraded include warnings.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}

// WithHighlightStyle selects the chroma style used by the built-in highlighter.
// It only matters for the stylesheet; highlighted markup uses CSS classes.
func WithHighlightStyle(name string) Option {
	return func(c *Compiler) {
		c.cfg.style = name
	}
}

// WithHighlighter replaces the built-in chroma highlighter.
func WithHighlighter(h Highlighter) Option {
	return func(c *Compiler) {
		c.cfg.highlighter = h
	}
}
