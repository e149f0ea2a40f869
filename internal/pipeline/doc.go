// Package pipeline implements the section-to-HTML assembly pipeline.
//
// Each stage is a pure transform over its input:
//   - Front-matter extraction (YAML metadata block)
//   - Main/sources content splitting
//   - Markdown to HTML conversion via Goldmark with a structural post-pass
//     (heading anchors, list levels, table styling)
//   - Topic mining from rendered heading structure
//   - Sources block normalization (citation lists, URL truncation)
//   - Intro and reading-time summaries
//
// The heading/topic detection stages are regex heuristics over free-form
// text, not guarantees; they are exposed as named policy functions so they
// can be tuned or swapped without touching the pipeline shape. PDF rendering
// is handled separately by the root reportpdf package using headless Chrome
// (go-rod); this package never touches page layout.
package pipeline
