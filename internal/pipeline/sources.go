package pipeline

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// SourcesConfig controls sources block normalization.
type SourcesConfig struct {
	// Labels are the recognized source-heading labels.
	// Empty means DefaultSourceLabels.
	Labels []string

	// MaxURLDisplayLength truncates the visible text of self-labelled links
	// longer than this many characters. Zero means DefaultMaxURLDisplayLength.
	MaxURLDisplayLength int

	// ListClass is applied to top-level lists in the sources block.
	// Empty means DefaultSourcesListClass.
	ListClass string

	// LongURLClass tags links whose visible text was truncated.
	// Empty means DefaultLongURLClass.
	LongURLClass string

	// CoerceParagraphs converts paragraphs that begin with a bullet glyph
	// or an ordinal into list items attached to an adjacent list.
	CoerceParagraphs bool
}

// Defaults for SourcesConfig zero values.
const (
	DefaultMaxURLDisplayLength = 60
	DefaultSourcesListClass    = "sources-list"
	DefaultLongURLClass        = "long-url"
)

// minURLDisplayLength is the smallest usable budget: one rune plus the
// three-dot ellipsis.
const minURLDisplayLength = 4

// ordinalPrefixPattern matches paragraph text starting an ordered item: "1. " or "2) ".
var ordinalPrefixPattern = regexp.MustCompile(`^\d+[.)]\s+`)

// bulletPrefixes are glyphs that open an unordered item in plain paragraphs.
var bulletPrefixes = []string{"•", "-", "*"}

// SourcesNormalizer converts a raw sources/citations block into cleaned
// HTML. It uses a restricted extension set (tables, footnotes, hard line
// breaks only) since the block never contributes headings to the TOC.
//
// Like Renderer, the underlying converter must not be shared across
// concurrent assemblies; call Reset between independent sections.
type SourcesNormalizer struct {
	md      goldmark.Markdown
	matcher *SourceMatcher
	cfg     SourcesConfig
}

// NewSourcesNormalizer creates a normalizer, filling config zero values
// with defaults. Budgets too small to hold an ellipsis are clamped up.
func NewSourcesNormalizer(cfg SourcesConfig) *SourcesNormalizer {
	if cfg.MaxURLDisplayLength == 0 {
		cfg.MaxURLDisplayLength = DefaultMaxURLDisplayLength
	} else if cfg.MaxURLDisplayLength < minURLDisplayLength {
		cfg.MaxURLDisplayLength = minURLDisplayLength
	}
	if cfg.ListClass == "" {
		cfg.ListClass = DefaultSourcesListClass
	}
	if cfg.LongURLClass == "" {
		cfg.LongURLClass = DefaultLongURLClass
	}

	return &SourcesNormalizer{
		md:      newSourcesGoldmark(),
		matcher: NewSourceMatcher(cfg.Labels),
		cfg:     cfg,
	}
}

func newSourcesGoldmark() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Footnote,
			extension.Linkify, // bare URLs become links, so truncation can see them
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
}

// Reset discards converter state carried over from a previous section.
func (n *SourcesNormalizer) Reset() {
	n.md = newSourcesGoldmark()
}

// Normalize converts the sources Markdown to HTML and applies the cleanup
// post-pass: redundant leading heading removal, citation list classes,
// long URL truncation, and optional paragraph-to-list coercion.
// Empty input yields an empty fragment.
func (n *SourcesNormalizer) Normalize(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := n.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	body := doc.Find("body")
	n.stripLeadingHeading(body)
	if n.cfg.CoerceParagraphs {
		n.coerceParagraphs(body)
	}
	n.tagSourceLists(body)
	n.truncateLongURLs(body)

	out, err := body.Html()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return strings.TrimSpace(out), nil
}

// stripLeadingHeading removes a first element whose text matches one of the
// configured source-heading labels. It is redundant with the "Sources"
// banner the report template renders. An emphasis-only heading renders as a
// paragraph, so those are stripped too.
func (n *SourcesNormalizer) stripLeadingHeading(body *goquery.Selection) {
	first := body.Children().First()
	if first.Length() == 0 {
		return
	}
	if !first.Is("h1, h2, h3, h4, h5, h6, p") {
		return
	}
	if n.matcher.MatchesLabel(first.Text()) {
		first.Remove()
	}
}

// tagSourceLists applies the citation list class to top-level lists only;
// nested lists keep their visual hierarchy unstyled.
func (n *SourcesNormalizer) tagSourceLists(body *goquery.Selection) {
	body.Find("ul, ol").Each(func(_ int, list *goquery.Selection) {
		if list.ParentsFiltered("ul, ol").Length() > 0 {
			return
		}
		list.AddClass(n.cfg.ListClass)
	})
}

// truncateLongURLs shortens the visible text of links that display their own
// URL and exceed the configured budget. The full URL moves to a hover title.
func (n *SourcesNormalizer) truncateLongURLs(body *goquery.Selection) {
	body.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		text := strings.TrimSpace(a.Text())
		if text != href {
			return
		}
		runes := []rune(text)
		if len(runes) <= n.cfg.MaxURLDisplayLength {
			return
		}

		a.SetAttr("title", text)
		a.SetText(string(runes[:n.cfg.MaxURLDisplayLength-3]) + "...")
		a.AddClass(n.cfg.LongURLClass)
	})
}

// coerceParagraphs converts paragraphs that begin with a bullet glyph or an
// ordinal into list items. Items attach to an adjacent list of the matching
// type when one exists; otherwise a new list is synthesized in place.
func (n *SourcesNormalizer) coerceParagraphs(body *goquery.Selection) {
	body.ChildrenFiltered("p").Each(func(_ int, p *goquery.Selection) {
		listType, item := n.paragraphListItem(p)
		if listType == "" {
			return
		}

		itemHTML := "<li>" + item + "</li>"

		if prev := p.Prev(); prev.Is(listType) {
			prev.AppendHtml(itemHTML)
			p.Remove()
			return
		}
		if next := p.Next(); next.Is(listType) {
			next.PrependHtml(itemHTML)
			p.Remove()
			return
		}

		p.ReplaceWithHtml(fmt.Sprintf(`<%s class=%q>%s</%s>`,
			listType, n.cfg.ListClass, itemHTML, listType))
	})
}

// paragraphListItem classifies a paragraph as a would-be list item.
// Returns the target list type ("ul" or "ol") and the item's inner HTML
// with the marker removed, or "" when the paragraph is not list-like.
func (n *SourcesNormalizer) paragraphListItem(p *goquery.Selection) (listType, item string) {
	text := strings.TrimSpace(p.Text())
	inner, err := p.Html()
	if err != nil {
		return "", ""
	}
	inner = strings.TrimSpace(inner)

	for _, bullet := range bulletPrefixes {
		if strings.HasPrefix(text, bullet) {
			// Strip the marker from the inner HTML when it leads it; fall
			// back to the plain text when markup precedes the marker.
			if strings.HasPrefix(inner, bullet) {
				return "ul", strings.TrimSpace(strings.TrimPrefix(inner, bullet))
			}
			return "ul", strings.TrimSpace(strings.TrimPrefix(text, bullet))
		}
	}

	if m := ordinalPrefixPattern.FindString(text); m != "" {
		if strings.HasPrefix(inner, m) {
			return "ol", strings.TrimSpace(strings.TrimPrefix(inner, m))
		}
		return "ol", strings.TrimSpace(strings.TrimPrefix(text, m))
	}

	return "", ""
}
