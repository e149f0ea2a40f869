package pipeline

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractTopics mines an ordered list of topic labels from the level-2 and
// level-3 headings of a rendered HTML fragment.
//
// Heuristic: when the first collected heading is an h2 it is treated as the
// section's own title and skipped, so the section title is not duplicated
// as a topic. Source text is free-form, so this is a best-effort policy,
// not a guarantee.
//
// Leading enumeration prefixes are stripped from each heading; headings
// that are empty after cleaning are dropped. A positive maxTopics bound
// truncates the result once reached.
func ExtractTopics(htmlFragment string, maxTopics int) ([]string, error) {
	if strings.TrimSpace(htmlFragment) == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlFragment))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML for topics: %w", err)
	}

	type heading struct {
		tag  string
		text string
	}
	var headings []heading

	doc.Find("h2, h3").Each(func(_ int, h *goquery.Selection) {
		headings = append(headings, heading{
			tag:  goquery.NodeName(h),
			text: strings.TrimSpace(h.Text()),
		})
	})

	start := 0
	if len(headings) > 0 && headings[0].tag == "h2" {
		start = 1
	}

	var topics []string
	for _, h := range headings[start:] {
		clean := strings.TrimSpace(StripEnumPrefix(h.text))
		if clean == "" {
			continue
		}
		topics = append(topics, clean)
		if maxTopics > 0 && len(topics) >= maxTopics {
			break
		}
	}

	return topics, nil
}
