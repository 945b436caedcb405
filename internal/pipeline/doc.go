// Package pipeline implements the Markdown-to-HTML stage of a page compile.
//
// The stage runs in this order:
//   - Assemble: body plus include fragments, in declaration order
//   - Preprocessing (line normalization, ```shell fences to ```bash)
//   - Markdown to HTML conversion via Goldmark, fenced code highlighted with chroma
//   - Fixups: code attributes move onto <pre>, scoped highlight classes lose their suffix
//
// RewriteRelativePaths is used by the CLI when a page is written away from its source.
package pipeline
