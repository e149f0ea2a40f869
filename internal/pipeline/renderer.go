package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates Markdown to HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Renderer converts a section's main Markdown content to a structurally
// annotated HTML fragment.
//
// The underlying converter may accumulate state across conversions
// (footnote counters, parse context). Call Reset between independent
// sections; sharing one Renderer across concurrent assemblies corrupts
// output. This is a correctness invariant, not an optimization.
type Renderer struct {
	md         goldmark.Markdown
	tableClass string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithTableClass adds an extra styling class to every table, on top of the
// standard table classes.
func WithTableClass(class string) RendererOption {
	return func(r *Renderer) {
		r.tableClass = class
	}
}

// NewRenderer creates a Renderer with the fixed extension set: GFM tables,
// fenced code with syntax highlighting, footnotes, definition lists, and
// hard line breaks. Automatic heading IDs are disabled; anchors are assigned
// by the structural post-pass, which strips enumeration prefixes first.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{md: newGoldmark()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// newGoldmark builds a fresh converter instance.
func newGoldmark() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,            // Tables, strikethrough, autolinks, task lists
			extension.Footnote,       // [^1] footnotes
			extension.DefinitionList, // Term/definition pairs
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes for external stylesheet control
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			html.WithXHTML(),     // Self-closing tags
		),
	)
}

// Reset discards any converter state carried over from a previous section.
// Must be called between independent conversions.
func (r *Renderer) Reset() {
	r.md = newGoldmark()
}

// Render converts Markdown to an HTML fragment and applies the structural
// post-pass: heading classes and anchors, level-aware list classes, and
// table styling. Empty input (after trim) yields an empty fragment.
func (r *Renderer) Render(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	body := doc.Find("body")
	processHeadings(body)
	processLists(body)
	processTables(body, r.tableClass)

	out, err := body.Html()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return strings.TrimSpace(out), nil
}
