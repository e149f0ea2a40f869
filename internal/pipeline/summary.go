package pipeline

import (
	"math"
	"regexp"
	"strings"
)

// Summary policy constants.
const (
	// DefaultIntroBudget is the character budget for intro summaries.
	DefaultIntroBudget = 200

	// readingWordsPerMinute assumes a fast reader; reading times are a
	// rough signal for the section intro box, not a measurement.
	readingWordsPerMinute = 300

	// Reading time bounds in minutes.
	minReadingMinutes = 1
	maxReadingMinutes = 5
)

// listMarkerPattern matches unordered ("- ", "* ", "+ ") and ordered
// ("1. ", "2) ") list markers at the start of a trimmed line.
var listMarkerPattern = regexp.MustCompile(`^(?:[-*+]\s|\d+[.)]\s)`)

// ExtractIntro returns the section's intro summary: the first contiguous
// run of non-empty, non-structural lines of the main Markdown content,
// joined with single spaces and truncated at the character budget on a
// word boundary with a trailing ellipsis. A budget of zero or less means
// DefaultIntroBudget.
func ExtractIntro(markdown string, budget int) string {
	if budget <= 0 {
		budget = DefaultIntroBudget
	}

	var paragraph []string
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || isStructuralLine(trimmed) {
			if len(paragraph) > 0 {
				break
			}
			continue
		}
		paragraph = append(paragraph, trimmed)
	}

	intro := strings.Join(paragraph, " ")
	runes := []rune(intro)
	if len(runes) <= budget {
		return intro
	}

	cut := string(runes[:budget])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

// isStructuralLine reports whether a trimmed line opens a structural block:
// heading, list, table, blockquote, code fence, or delimiter. Structural
// lines never belong to the intro paragraph.
func isStructuralLine(trimmed string) bool {
	switch {
	case strings.HasPrefix(trimmed, "#"),
		strings.HasPrefix(trimmed, ">"),
		strings.HasPrefix(trimmed, "|"),
		strings.HasPrefix(trimmed, "```"),
		strings.HasPrefix(trimmed, "~~~"),
		strings.HasPrefix(trimmed, "---"):
		return true
	}
	return listMarkerPattern.MatchString(trimmed)
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ReadingTime estimates reading time in minutes for a word count:
// round(words/300) clamped to [1, 5].
func ReadingTime(words int) int {
	minutes := int(math.Round(float64(words) / readingWordsPerMinute))
	if minutes < minReadingMinutes {
		return minReadingMinutes
	}
	if minutes > maxReadingMinutes {
		return maxReadingMinutes
	}
	return minutes
}
