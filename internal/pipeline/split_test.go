package pipeline

import (
	"strings"
	"testing"
)

func TestSourceMatcherSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantMain    string
		wantSources string
	}{
		{
			name:        "h2 heading",
			body:        "# Title\nBody text.\n\n## Sources\n- http://a",
			wantMain:    "# Title\nBody text.",
			wantSources: "## Sources\n- http://a",
		},
		{
			name:        "h1 heading",
			body:        "Body\n\n# References\n- ref",
			wantMain:    "Body",
			wantSources: "# References\n- ref",
		},
		{
			name:        "emphasis wrapped",
			body:        "Body\n\n**Sources**\n- http://a",
			wantMain:    "Body",
			wantSources: "**Sources**\n- http://a",
		},
		{
			name:        "single asterisk emphasis",
			body:        "Body\n\n*Citations*\n- c",
			wantMain:    "Body",
			wantSources: "*Citations*\n- c",
		},
		{
			name:        "case insensitive",
			body:        "Body\n\n## SOURCES\n- a",
			wantMain:    "Body",
			wantSources: "## SOURCES\n- a",
		},
		{
			name:        "leading whitespace on heading line",
			body:        "Body\n\n   ## Sources\n- a",
			wantMain:    "Body",
			wantSources: "## Sources\n- a",
		},
		{
			name:        "no match",
			body:        "# Title\nJust body text.",
			wantMain:    "# Title\nJust body text.",
			wantSources: "",
		},
		{
			name:        "bare label does not match",
			body:        "Body\n\nSources\n- a",
			wantMain:    "Body\n\nSources\n- a",
			wantSources: "",
		},
		{
			name:        "label inside sentence does not match",
			body:        "We list our Sources below.\nMore text.",
			wantMain:    "We list our Sources below.\nMore text.",
			wantSources: "",
		},
		{
			name:        "last occurrence wins",
			body:        "Intro\n\n## Sources\nexplained in prose\n\nMore body\n\n## Sources\n- real citation",
			wantMain:    "Intro\n\n## Sources\nexplained in prose\n\nMore body",
			wantSources: "## Sources\n- real citation",
		},
		{
			name:        "empty body",
			body:        "",
			wantMain:    "",
			wantSources: "",
		},
		{
			name:        "heading with trailing spaces",
			body:        "Body\n\n## Sources   \n- a",
			wantMain:    "Body",
			wantSources: "## Sources   \n- a",
		},
	}

	m := NewSourceMatcher(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotMain, gotSources := m.Split(tt.body)
			if gotMain != tt.wantMain {
				t.Errorf("main = %q, want %q", gotMain, tt.wantMain)
			}
			if gotSources != tt.wantSources {
				t.Errorf("sources = %q, want %q", gotSources, tt.wantSources)
			}
		})
	}
}

// Split totality: main and sources together cover the whole body, with only
// trimming between them.
func TestSourceMatcherSplitTotality(t *testing.T) {
	t.Parallel()

	bodies := []string{
		"# Title\nBody.\n\n## Sources\n- a\n- b",
		"no sources at all",
		"## Sources\n- only sources",
		"",
	}

	m := NewSourceMatcher(nil)

	for _, body := range bodies {
		mainContent, sourcesContent := m.Split(body)
		joined := strings.TrimSpace(strings.TrimSpace(mainContent) + "\n\n" + sourcesContent)
		want := strings.TrimSpace(body)

		// Normalize internal blank runs: trims around the split point may
		// collapse blank lines.
		normalize := func(s string) string {
			var out []string
			for _, line := range strings.Split(s, "\n") {
				if strings.TrimSpace(line) != "" {
					out = append(out, strings.TrimRight(line, " \t"))
				}
			}
			return strings.Join(out, "\n")
		}

		if normalize(joined) != normalize(want) {
			t.Errorf("split not total for %q:\nmain=%q\nsources=%q", body, mainContent, sourcesContent)
		}
	}
}

func TestSourceMatcherCustomLabels(t *testing.T) {
	t.Parallel()

	m := NewSourceMatcher([]string{"出典"})

	mainContent, sourcesContent := m.Split("本文\n\n## 出典\n- リンク")
	if mainContent != "本文" {
		t.Errorf("main = %q, want %q", mainContent, "本文")
	}
	if !strings.HasPrefix(sourcesContent, "## 出典") {
		t.Errorf("sources = %q, want prefix %q", sourcesContent, "## 出典")
	}

	// Default labels no longer match.
	mainContent, sourcesContent = m.Split("Body\n\n## Sources\n- a")
	if sourcesContent != "" {
		t.Errorf("sources = %q, want empty for non-configured label", sourcesContent)
	}
	_ = mainContent
}

func TestSourceMatcherMatchesLabel(t *testing.T) {
	t.Parallel()

	m := NewSourceMatcher(nil)

	tests := []struct {
		input string
		want  bool
	}{
		{"Sources", true},
		{"  sources  ", true},
		{"**Sources**", true},
		{"## References", true},
		{"Citations", true},
		{"Sources and more", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := m.MatchesLabel(tt.input); got != tt.want {
			t.Errorf("MatchesLabel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
