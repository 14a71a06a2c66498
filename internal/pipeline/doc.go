// Package pipeline implements the Markdown-to-HTML rendering pipeline.
//
// Stages, in order:
//   - Markdown preprocessing (line ending normalization, BOM removal)
//   - Markdown to HTML fragment conversion via Goldmark (GFM tables,
//     fenced code with Chroma highlighting classes)
//   - Relative path rebasing when the page is written away from its source
//   - Page shell rendering (html/template)
//   - CSS and table of contents injection
//
// Validation of the document structure is not part of the pipeline: a page
// is rendered whatever the lint outcome.
package pipeline
