package pipeline

import (
	"strings"

	"github.com/alnah/go-reportpdf/internal/yamlutil"
)

// Metadata holds key/value pairs parsed from a section's front-matter block.
// An empty map is valid; extraction never fails.
type Metadata map[string]any

// frontMatterDelimiter separates the metadata block from the body.
const frontMatterDelimiter = "---"

// ExtractFrontMatter strips an optional YAML front-matter block from raw
// section text. If the text (after trimming leading whitespace) begins with
// a "---" delimiter, the content between the first two delimiters is parsed
// as YAML. On any parse failure or a non-mapping result the original trimmed
// text is returned unchanged with empty metadata (fail-soft, never errors).
//
// Extraction is idempotent: running it again on the returned remainder
// yields empty metadata and the identical remainder.
func ExtractFrontMatter(raw string) (Metadata, string) {
	content := strings.TrimLeft(raw, " \t\r\n")

	if !strings.HasPrefix(content, frontMatterDelimiter) {
		return Metadata{}, strings.TrimSpace(content)
	}

	// Split on the first two delimiters: "", block, remainder.
	parts := strings.SplitN(content, frontMatterDelimiter, 3)
	if len(parts) < 3 {
		return Metadata{}, strings.TrimSpace(content)
	}

	block := strings.TrimSpace(parts[1])
	if block == "" {
		// Empty front-matter block is valid: strip it, keep no metadata.
		return Metadata{}, strings.TrimSpace(parts[2])
	}

	var meta Metadata
	if err := yamlutil.Unmarshal([]byte(block), &meta); err != nil || meta == nil {
		// Malformed or non-mapping block: keep the original text intact.
		return Metadata{}, strings.TrimSpace(content)
	}

	return meta, strings.TrimSpace(parts[2])
}
