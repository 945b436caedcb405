package slate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alnah/go-slate/internal/document"
	"github.com/alnah/go-slate/internal/include"
	"github.com/alnah/go-slate/internal/metadata"
	"github.com/alnah/go-slate/internal/page"
	"github.com/alnah/go-slate/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.SlatePreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ Highlighter                   = (*pipeline.ChromaHighlighter)(nil)
	_ IncludeLoader                 = IncludeLoaderFunc(nil)
	_ include.Loader                = IncludeLoaderFunc(nil)
	_ LayoutLoader                  = (*layoutLoader)(nil)
)

// Compiler turns one annotated markdown document into a page.
// Create with NewCompiler and reuse it: it holds no per-document state
// and is safe for concurrent use.
type Compiler struct {
	cfg           compilerConfig
	resolver      *include.Resolver
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
}

// NewCompiler creates a Compiler with default configuration.
// Use options to customize behavior (e.g., WithIncludeLoader, WithIncludePolicy).
// Returns error if an option value is invalid.
func NewCompiler(opts ...Option) (*Compiler, error) {
	c := &Compiler{
		cfg: compilerConfig{
			style:  pipeline.DefaultStyle,
			logger: slog.New(slog.DiscardHandler),
		},
		preprocessor: &pipeline.SlatePreprocessor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	policy, err := c.cfg.policy.resolverPolicy()
	if err != nil {
		return nil, err
	}

	// Create the converter if not injected (e.g., by tests)
	if c.htmlConverter == nil {
		h := c.cfg.highlighter
		if h == nil {
			if !pipeline.HasStyle(c.cfg.style) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, c.cfg.style)
			}
			h = pipeline.NewChromaHighlighter(c.cfg.style)
		}
		c.htmlConverter = pipeline.NewGoldmarkConverter(h)
	}

	c.resolver = &include.Resolver{
		Loader:  c.cfg.loader,
		Policy:  policy,
		Logger:  c.cfg.logger,
		Timeout: c.cfg.includeTimeout,
	}

	return c, nil
}

// Compile runs the full pipeline for one document:
// split, walk the front matter, resolve includes, assemble, render, compose.
// Every failure is returned as *Error.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Compiler) Compile(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &Error{Kind: KindInternal, Message: "internal error", Err: fmt.Errorf("%v", r)}
		}
	}()

	if strings.TrimSpace(input.Template) == "" {
		return nil, &Error{Kind: KindTemplate, Message: "loading template", Err: ErrEmptyTemplate}
	}

	doc, err := document.Split(input.Markdown)
	if err != nil {
		return nil, &Error{Kind: KindMalformedDocument, Message: "splitting document", Err: err}
	}

	meta := metadata.Parse(doc.FrontMatter)

	fragments, err := c.resolver.Resolve(ctx, meta.Includes(), input.DocumentID)
	if err != nil {
		return nil, &Error{Kind: KindInclude, Message: "resolving includes", Err: fmt.Errorf("%w: %w", ErrIncludeLoad, err)}
	}

	markdown := c.preprocessor.PreprocessMarkdown(ctx, pipeline.Assemble(doc.Body, fragments))
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindConversion, Message: "preprocessing markdown", Err: err}
	}

	content, err := c.htmlConverter.ToHTML(ctx, markdown)
	if err != nil {
		return nil, &Error{Kind: KindConversion, Message: "converting to HTML", Err: err}
	}
	content = pipeline.ApplyFixups(content)

	if input.ContentFilter != nil {
		content, err = input.ContentFilter(content)
		if err != nil {
			return nil, &Error{Kind: KindConversion, Message: "filtering content", Err: err}
		}
	}

	composer, err := page.NewComposer(input.Template)
	if err != nil {
		return nil, &Error{Kind: KindTemplate, Message: "parsing template", Err: fmt.Errorf("%w: %w", ErrTemplate, err)}
	}

	fields := meta.Map()
	out, err := composer.Compose(fields, content)
	if err != nil {
		return nil, &Error{Kind: KindTemplate, Message: "rendering template", Err: fmt.Errorf("%w: %w", ErrTemplate, err)}
	}

	c.cfg.logger.Debug("compiled page",
		slog.String("document", input.DocumentID),
		slog.Int("fields", meta.Len()),
		slog.Int("includes", len(fragments)),
		slog.Int("bytes", len(out)),
	)

	return &Result{Page: out, Metadata: fields, Content: content}, nil
}

// Compile compiles markdown into template with a one-off Compiler.
// loader may be nil, in which case every include is empty.
func Compile(ctx context.Context, markdown, template string, loader IncludeLoader) (string, error) {
	c, err := NewCompiler(WithIncludeLoader(loader))
	if err != nil {
		return "", err
	}
	res, err := c.Compile(ctx, Input{Markdown: markdown, Template: template})
	if err != nil {
		return "", err
	}
	return res.Page, nil
}

// resolverPolicy maps the public policy onto the include resolver's.
func (p IncludePolicy) resolverPolicy() (include.Policy, error) {
	switch p {
	case IncludesDegrade:
		return include.PolicyDegrade, nil
	case IncludesStrict:
		return include.PolicyStrict, nil
	default:
		return include.PolicyDegrade, fmt.Errorf("%w: %v", ErrInvalidIncludePolicy, p)
	}
}
