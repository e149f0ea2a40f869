package reportpdf

import (
	"fmt"
	"strings"

	"github.com/alnah/go-reportpdf/internal/pipeline"
)

// DefaultMaxTopics bounds the key-topics list in each section's intro box.
const DefaultMaxTopics = 5

// assemblerConfig holds assembly policy knobs.
type assemblerConfig struct {
	logf                func(format string, args ...any)
	introBudget         int
	maxTopics           int
	sourceLabels        []string
	maxURLDisplayLength int
	coerceParagraphs    bool
	tableClass          string
}

// mainRenderer converts a section's main Markdown to annotated HTML.
type mainRenderer interface {
	Reset()
	Render(markdown string) (string, error)
}

var _ mainRenderer = (*pipeline.Renderer)(nil)

// Assembler runs the full per-section pipeline and builds a Document.
//
// An Assembler owns its converter instances and resets them between
// sections; it must not be used concurrently. Use one Assembler (or one
// Service) per goroutine.
type Assembler struct {
	cfg        assemblerConfig
	renderer   mainRenderer
	matcher    *pipeline.SourceMatcher
	normalizer *pipeline.SourcesNormalizer
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*assemblerConfig)

// WithLogf sets a logging hook for non-fatal per-section events.
// The default discards.
func WithLogf(logf func(format string, args ...any)) AssemblerOption {
	return func(c *assemblerConfig) {
		c.logf = logf
	}
}

// WithIntroBudget sets the intro summary character budget.
func WithIntroBudget(chars int) AssemblerOption {
	return func(c *assemblerConfig) {
		c.introBudget = chars
	}
}

// WithMaxTopics bounds the key-topics list per section. Zero or negative
// means unbounded.
func WithMaxTopics(n int) AssemblerOption {
	return func(c *assemblerConfig) {
		c.maxTopics = n
	}
}

// WithSourceLabels replaces the recognized sources-heading labels.
func WithSourceLabels(labels []string) AssemblerOption {
	return func(c *assemblerConfig) {
		c.sourceLabels = labels
	}
}

// WithMaxURLDisplayLength sets the visible-text budget for source links.
func WithMaxURLDisplayLength(n int) AssemblerOption {
	return func(c *assemblerConfig) {
		c.maxURLDisplayLength = n
	}
}

// WithParagraphCoercion converts bullet-like paragraphs in sources blocks
// into list items.
func WithParagraphCoercion(enabled bool) AssemblerOption {
	return func(c *assemblerConfig) {
		c.coerceParagraphs = enabled
	}
}

// WithTableClass adds an extra styling class to every rendered table.
func WithTableClass(class string) AssemblerOption {
	return func(c *assemblerConfig) {
		c.tableClass = class
	}
}

// NewAssembler creates an Assembler with the given options.
func NewAssembler(opts ...AssemblerOption) *Assembler {
	cfg := assemblerConfig{
		logf:        func(string, ...any) {},
		introBudget: pipeline.DefaultIntroBudget,
		maxTopics:   DefaultMaxTopics,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var rendererOpts []pipeline.RendererOption
	if cfg.tableClass != "" {
		rendererOpts = append(rendererOpts, pipeline.WithTableClass(cfg.tableClass))
	}

	return &Assembler{
		cfg:      cfg,
		renderer: pipeline.NewRenderer(rendererOpts...),
		matcher:  pipeline.NewSourceMatcher(cfg.sourceLabels),
		normalizer: pipeline.NewSourcesNormalizer(pipeline.SourcesConfig{
			Labels:              cfg.sourceLabels,
			MaxURLDisplayLength: cfg.maxURLDisplayLength,
			CoerceParagraphs:    cfg.coerceParagraphs,
		}),
	}
}

// Assemble processes raw sections in order and builds the Document:
// per-section pipeline runs, anchor assignment, table of contents, and the
// combined sources trailer. Output is deterministic for identical input;
// nothing here reads the clock.
func (a *Assembler) Assemble(rawSections []RawSection) (*Document, error) {
	if len(rawSections) == 0 {
		return nil, ErrNoSections
	}

	doc := &Document{Sections: make([]Section, 0, len(rawSections))}
	usedAnchors := make(map[string]bool)
	var sourcesParts []string

	for _, raw := range rawSections {
		// Converters carry state between conversions.
		a.renderer.Reset()
		a.normalizer.Reset()

		sec := a.processSection(raw)
		sec.AnchorID = uniqueAnchor(raw.ID, usedAnchors)

		if !sec.IsEmpty && sec.SourcesHTML != "" {
			sourcesParts = append(sourcesParts, sec.SourcesHTML)
		}

		doc.Sections = append(doc.Sections, sec)
	}

	doc.CombinedSourcesHTML = strings.Join(sourcesParts, "\n\n")
	doc.Toc = buildToc(doc.Sections, usedAnchors)

	return doc, nil
}

// processSection runs one section through the pipeline stages. Every stage
// failure recovers locally; a section that cannot be converted is retained
// as an empty placeholder.
func (a *Assembler) processSection(raw RawSection) Section {
	sec := Section{ID: raw.ID, Title: raw.Title}

	var body string
	sec.Metadata, body = pipeline.ExtractFrontMatter(raw.RawText)
	if strings.HasPrefix(body, "---") {
		a.cfg.logf("section %s: front matter not extracted, keeping text intact", raw.ID)
	}

	sec.MainMarkdown, sec.SourcesMarkdown = a.matcher.Split(body)

	if strings.TrimSpace(sec.MainMarkdown) == "" {
		sec.IsEmpty = true
		a.cfg.logf("section %s: empty main content, retained as placeholder", raw.ID)
		return sec
	}

	var err error
	sec.MainHTML, err = a.renderer.Render(sec.MainMarkdown)
	if err != nil {
		sec.MainHTML = ""
		sec.IsEmpty = true
		a.cfg.logf("section %s: HTML conversion failed, retained as placeholder: %v", raw.ID, err)
		return sec
	}

	sec.Topics, err = pipeline.ExtractTopics(sec.MainHTML, a.cfg.maxTopics)
	if err != nil {
		a.cfg.logf("section %s: topic extraction failed: %v", raw.ID, err)
		sec.Topics = nil
	}

	sec.SourcesHTML, err = a.normalizer.Normalize(sec.SourcesMarkdown)
	if err != nil {
		a.cfg.logf("section %s: sources normalization failed, dropping sources: %v", raw.ID, err)
		sec.SourcesHTML = ""
	}

	sec.IntroText = pipeline.ExtractIntro(sec.MainMarkdown, a.cfg.introBudget)
	sec.ReadingTimeMinutes = pipeline.ReadingTime(pipeline.WordCount(sec.MainMarkdown))

	return sec
}

// buildToc maps each non-empty section to a TOC entry whose sub-entries
// mirror the section's topics. Sub-entry anchors use the same slug policy as
// the renderer's heading post-pass, deduplicated against every anchor already
// handed out; a suffixed sub-entry no longer lands on its heading, which is
// the price of document-wide anchor uniqueness.
func buildToc(sections []Section, used map[string]bool) []TocEntry {
	var toc []TocEntry
	for _, sec := range sections {
		if sec.IsEmpty {
			continue
		}

		entry := TocEntry{
			SectionID: sec.ID,
			Label:     sec.Title,
			AnchorID:  sec.AnchorID,
		}
		for _, topic := range sec.Topics {
			base := pipeline.Slugify(topic)
			if base == "" {
				base = pipeline.HashID("t", topic)
			}
			entry.SubEntries = append(entry.SubEntries, SubEntry{
				Label:    topic,
				AnchorID: dedupeAnchor(base, used),
			})
		}
		toc = append(toc, entry)
	}
	return toc
}

// uniqueAnchor derives a document-unique anchor from a section ID. Anchors
// come from the ID, not the title, so they stay stable when sections are
// relabeled. Unsluggable IDs fall back to a hash-derived identifier.
func uniqueAnchor(id string, used map[string]bool) string {
	base := pipeline.Slugify(id)
	if base == "" {
		base = pipeline.HashID("s", id)
	}
	return dedupeAnchor(base, used)
}

// dedupeAnchor claims base in the used set, suffixing -2, -3, ... on
// collision.
func dedupeAnchor(base string, used map[string]bool) string {
	anchor := base
	for i := 2; used[anchor]; i++ {
		anchor = fmt.Sprintf("%s-%d", base, i)
	}
	used[anchor] = true
	return anchor
}
