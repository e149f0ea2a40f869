package pipeline

import (
	"regexp"
	"strings"
)

// DefaultSourceLabels are the heading labels that mark a trailing
// sources/citations block.
var DefaultSourceLabels = []string{"Sources", "References", "Citations", "Bibliography"}

// SourceMatcher recognizes source-block headings in Markdown text.
// A heading line is: optional indent, then one to six '#' markers followed
// by the label, or the label wrapped in emphasis markers, with nothing but
// whitespace to end of line. Matching is case-insensitive.
type SourceMatcher struct {
	labels  []string
	heading *regexp.Regexp
}

// NewSourceMatcher creates a matcher for the given labels.
// Nil or empty labels fall back to DefaultSourceLabels.
func NewSourceMatcher(labels []string) *SourceMatcher {
	if len(labels) == 0 {
		labels = DefaultSourceLabels
	}

	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	alternation := strings.Join(quoted, "|")

	// Heading form: "## Sources", "### **Sources**". Emphasis form:
	// "**Sources**", "*Sources*", "__Sources__". A bare label does not match.
	pattern := `(?mi)^[ \t]*(?:#{1,6}[ \t]*(?:\*\*|__)?|\*\*|\*|__|_)(?:` +
		alternation + `)(?:\*\*|\*|__|_)?[ \t]*$`

	return &SourceMatcher{
		labels:  labels,
		heading: regexp.MustCompile(pattern),
	}
}

// Split separates body text into main content and a trailing sources block.
// Among all matching heading lines the last occurrence wins: earlier
// sections may mention "Sources" inside a table or aside, and only the final
// heading is the authoritative start of the citation trailer. If no heading
// matches, the whole trimmed body is main content and sources is empty.
func (m *SourceMatcher) Split(body string) (mainContent, sourcesContent string) {
	locs := m.heading.FindAllStringIndex(body, -1)
	if len(locs) == 0 {
		return strings.TrimSpace(body), ""
	}

	start := locs[len(locs)-1][0]
	return strings.TrimSpace(body[:start]), strings.TrimSpace(body[start:])
}

// MatchesLabel reports whether text equals one of the configured labels
// after trimming whitespace, emphasis markers, and heading markers.
// Used to drop a redundant leading heading from a rendered sources block.
func (m *SourceMatcher) MatchesLabel(text string) bool {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimLeft(cleaned, "#")
	cleaned = strings.Trim(cleaned, "*_ \t")
	for _, l := range m.labels {
		if strings.EqualFold(cleaned, l) {
			return true
		}
	}
	return false
}

// Labels returns the configured heading labels.
func (m *SourceMatcher) Labels() []string {
	return m.labels
}
