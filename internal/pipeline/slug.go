package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Precompiled identifier patterns.
var (
	// Leading enumeration like "1. ", "1.2 ", "3.4.5. "
	enumPrefixPattern = regexp.MustCompile(`^\d+(\.\d+)*\.?\s+`)

	// Characters dropped before slugging
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)

	// Whitespace/hyphen runs collapsed to a single hyphen
	slugSeparators = regexp.MustCompile(`[\s-]+`)
)

// StripEnumPrefix removes a leading numeric enumeration ("1. ", "2.3 ")
// from heading or topic text.
func StripEnumPrefix(s string) string {
	return enumPrefixPattern.ReplaceAllString(s, "")
}

// Slugify converts text to a lowercase, URL-safe anchor identifier.
// Non-word characters are dropped and whitespace collapses to hyphens.
// May return "" for text with no sluggable characters (e.g. pure CJK
// headings); callers fall back to HashID.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// HashID returns a deterministic, URL-safe identifier derived from text.
// Used as a fallback when slugification yields an empty or colliding anchor.
func HashID(prefix, text string) string {
	return fmt.Sprintf("%s-%08x", prefix, uint32(xxhash.Sum64String(text)))
}
