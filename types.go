package reportpdf

import (
	"strings"

	"github.com/alnah/go-reportpdf/internal/pipeline"
)

// Report metadata defaults.
const (
	DefaultReportType = "Analysis"
	DefaultLanguage   = "English"
)

// RawSection is one unprocessed input section: an opaque identifier, a
// display title, and the raw Markdown text (front matter included).
type RawSection struct {
	ID      string
	Title   string
	RawText string
}

// Section is a fully processed section.
type Section struct {
	ID       string
	Title    string
	Metadata pipeline.Metadata

	// Split Markdown halves.
	MainMarkdown    string
	SourcesMarkdown string

	// Rendered fragments. MainHTML is empty iff MainMarkdown is empty
	// after trimming.
	MainHTML    string
	SourcesHTML string

	// Intro box data.
	IntroText          string
	Topics             []string
	ReadingTimeMinutes int

	// AnchorID is the TOC anchor derived from the section ID. Assigned to
	// every section, including empty ones.
	AnchorID string

	// IsEmpty marks sections whose main content vanished after splitting.
	// They are retained in the document but excluded from the TOC, topic
	// and reading-time computation, and sources aggregation.
	IsEmpty bool
}

// SubEntry is a TOC sub-item mirroring one extracted topic.
type SubEntry struct {
	Label    string
	AnchorID string
}

// TocEntry is a top-level table-of-contents entry for one non-empty section.
type TocEntry struct {
	SectionID  string
	Label      string
	AnchorID   string
	SubEntries []SubEntry
}

// Document is the assembled report, ready for template rendering.
type Document struct {
	Sections []Section
	Toc      []TocEntry

	// CombinedSourcesHTML concatenates every non-empty section's sources
	// fragment in section order, separated by a blank line.
	CombinedSourcesHTML string
}

// ReportMeta carries report-level presentation metadata. GenerationDate is
// caller-injected; the assembler never reads the system clock, so identical
// input always produces identical output.
type ReportMeta struct {
	CompanyName    string
	ReportType     string
	Language       string
	GenerationDate string
	LogoURL        string
	FaviconURL     string
}

// withDefaults fills zero-value fields with neutral defaults.
func (m ReportMeta) withDefaults() ReportMeta {
	if strings.TrimSpace(m.ReportType) == "" {
		m.ReportType = DefaultReportType
	}
	if strings.TrimSpace(m.Language) == "" {
		m.Language = DefaultLanguage
	}
	return m
}

// Title returns the document title shown on the cover and in the HTML head.
func (m ReportMeta) Title() string {
	m = m.withDefaults()
	if strings.TrimSpace(m.CompanyName) == "" {
		return m.ReportType
	}
	return m.CompanyName + " " + m.ReportType
}
