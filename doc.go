// Package slate compiles Slate-style API documentation pages: an annotated
// markdown document plus an HTML layout become one static page.
//
// # Quick Start
//
// Load a layout and compile a document with it:
//
//	layout, err := slate.LoadLayout(nil, slate.DefaultLayout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := slate.Compile(ctx, markdown, layout, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("index.html", []byte(page), 0644)
//
// # Document Format
//
// A document starts with page settings between two "---" lines, followed by
// the markdown body:
//
//	---
//	title: API Reference
//
//	language_tabs:
//	  - shell
//	  - ruby
//
//	includes:
//	  - errors
//	---
//
//	# Introduction
//
// Page settings are a flat list of "key: value" scalars and named lists.
// A "shell" language tab becomes "bash". The "includes" list names markdown
// fragments that are appended to the body, in order, before rendering.
//
// # Compile Pipeline
//
//  1. Split the document on the first two "---" lines
//  2. Walk the page settings into metadata
//  3. Load every include concurrently through an IncludeLoader
//  4. Assemble body and includes, rewrite shell fences to bash
//  5. Render with goldmark (GFM) and chroma, then fix up highlight classes
//  6. Execute the layout with the metadata and the rendered content
//
// # Configuration
//
// Use functional options to customize the compiler:
//
//	c, err := slate.NewCompiler(
//	    slate.WithIncludeLoader(loader),
//	    slate.WithIncludePolicy(slate.IncludesStrict),
//	    slate.WithHighlightStyle("github"),
//	    slate.WithLogger(logger),
//	)
//
// A Compiler is safe for concurrent use.
//
// # Layouts
//
// Layouts are html/template sources. Every page setting is available by key;
// lists are slices of strings. The rendered document is available as
// {{.content}} and is not escaped. Extra helpers:
//
//	{{str .title}}            quoted string
//	{{html .}}                trusted HTML fragment
//	{{json .language_tabs}}   JSON for script blocks
//	{{join ", " .tags}}       joined list
//
// # Errors
//
// Compile failures are *Error values carrying a Kind:
//
//	_, err := c.Compile(ctx, input)
//	switch slate.KindOf(err) {
//	case slate.KindMalformedDocument:
//	    // missing page settings
//	case slate.KindInclude:
//	    // include failed under the strict policy, or unrecoverably
//	}
//
// Sentinel errors such as ErrMissingPageSettings and ErrIncludeLoad match
// with errors.Is.
package slate
