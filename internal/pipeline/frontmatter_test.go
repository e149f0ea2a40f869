package pipeline

import (
	"reflect"
	"testing"
)

func TestExtractFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		input         string
		wantMeta      Metadata
		wantRemaining string
	}{
		{
			name:          "no front matter",
			input:         "# Heading\nBody text.",
			wantMeta:      Metadata{},
			wantRemaining: "# Heading\nBody text.",
		},
		{
			name:          "simple front matter",
			input:         "---\ntitle: X\n---\n# Heading\nBody text.",
			wantMeta:      Metadata{"title": "X"},
			wantRemaining: "# Heading\nBody text.",
		},
		{
			name:          "leading whitespace before delimiter",
			input:         "\n\n  ---\ntitle: X\n---\nBody",
			wantMeta:      Metadata{"title": "X"},
			wantRemaining: "Body",
		},
		{
			name:          "leading newlines before delimiter",
			input:         "\n\n---\ntitle: X\n---\nBody",
			wantMeta:      Metadata{"title": "X"},
			wantRemaining: "Body",
		},
		{
			name:          "empty front matter block",
			input:         "---\n---\nBody",
			wantMeta:      Metadata{},
			wantRemaining: "Body",
		},
		{
			name:          "malformed yaml keeps text intact",
			input:         "---\ntitle: [unclosed\n---\nBody",
			wantMeta:      Metadata{},
			wantRemaining: "---\ntitle: [unclosed\n---\nBody",
		},
		{
			name:          "non-mapping yaml keeps text intact",
			input:         "---\n- a\n- b\n---\nBody",
			wantMeta:      Metadata{},
			wantRemaining: "---\n- a\n- b\n---\nBody",
		},
		{
			name:          "unclosed delimiter keeps text intact",
			input:         "---\ntitle: X\nBody without closing",
			wantMeta:      Metadata{},
			wantRemaining: "---\ntitle: X\nBody without closing",
		},
		{
			name:          "empty input",
			input:         "",
			wantMeta:      Metadata{},
			wantRemaining: "",
		},
		{
			name:          "whitespace only",
			input:         "  \n\t\n",
			wantMeta:      Metadata{},
			wantRemaining: "",
		},
		{
			name:          "multiple keys",
			input:         "---\ntitle: X\nlanguage: English\n---\nBody",
			wantMeta:      Metadata{"title": "X", "language": "English"},
			wantRemaining: "Body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, remaining := ExtractFrontMatter(tt.input)
			if len(meta) != len(tt.wantMeta) {
				t.Errorf("metadata = %v, want %v", meta, tt.wantMeta)
			}
			for k, want := range tt.wantMeta {
				got, ok := meta[k]
				if !ok {
					t.Errorf("metadata missing key %q", k)
					continue
				}
				if !reflect.DeepEqual(got, want) {
					t.Errorf("metadata[%q] = %v (%T), want %v (%T)", k, got, got, want, want)
				}
			}
			if remaining != tt.wantRemaining {
				t.Errorf("remaining = %q, want %q", remaining, tt.wantRemaining)
			}
		})
	}
}

func TestExtractFrontMatterIdempotence(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"---\ntitle: X\n---\n# Heading\nBody text.",
		"# Heading\nBody text.",
		"",
		"---\n---\nBody",
		"plain paragraph\n\nanother",
		"---\ntitle: [broken\n---\nBody",
	}

	for _, input := range inputs {
		_, first := ExtractFrontMatter(input)
		meta, second := ExtractFrontMatter(first)
		if len(meta) != 0 {
			t.Errorf("re-extraction of %q yielded metadata %v, want empty", input, meta)
		}
		if second != first {
			t.Errorf("re-extraction changed text:\nfirst:  %q\nsecond: %q", first, second)
		}
	}
}
