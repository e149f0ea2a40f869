package fileutil

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	t.Run("creates file with content", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := WriteTempFile("<p>hello</p>", "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		defer cleanup()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading temp file: %v", err)
		}
		if string(data) != "<p>hello</p>" {
			t.Errorf("content = %q, want %q", data, "<p>hello</p>")
		}
		if !strings.HasSuffix(path, ".html") {
			t.Errorf("path %q missing .html suffix", path)
		}
	})

	t.Run("cleanup removes file", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := WriteTempFile("x", "txt")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		cleanup()
		if FileExists(path) {
			t.Errorf("file %q still exists after cleanup", path)
		}
	})

	t.Run("empty extension rejected", func(t *testing.T) {
		t.Parallel()

		_, _, err := WriteTempFile("x", "")
		if !errors.Is(err, ErrExtensionEmpty) {
			t.Errorf("error = %v, want ErrExtensionEmpty", err)
		}
	})

	t.Run("path traversal extension rejected", func(t *testing.T) {
		t.Parallel()

		_, _, err := WriteTempFile("x", "../evil")
		if !errors.Is(err, ErrExtensionPathTraversal) {
			t.Errorf("error = %v, want ErrExtensionPathTraversal", err)
		}
	})
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "clean name unchanged", input: "Acme Corp", expected: "Acme Corp"},
		{name: "slashes stripped", input: "Acme/Corp\\Ltd", expected: "AcmeCorpLtd"},
		{name: "windows illegal chars stripped", input: `A:c*m?e"<>|`, expected: "Acme"},
		{name: "control chars stripped", input: "Acme\x00\x1fCorp", expected: "AcmeCorp"},
		{name: "surrounding whitespace trimmed", input: "  Acme  ", expected: "Acme"},
		{name: "unicode preserved", input: "株式会社アクメ", expected: "株式会社アクメ"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SanitizeFilename(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestArtifactName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		company  string
		language string
		ext      string
		expected string
	}{
		{
			name:     "plain names",
			company:  "Acme",
			language: "English",
			ext:      "pdf",
			expected: "Acme_English_Report.pdf",
		},
		{
			name:     "illegal chars sanitized",
			company:  "Acme/Corp:Ltd",
			language: "English",
			ext:      "pdf",
			expected: "AcmeCorpLtd_English_Report.pdf",
		},
		{
			name:     "empty company falls back",
			company:  "",
			language: "Japanese",
			ext:      "pdf",
			expected: "Company_Japanese_Report.pdf",
		},
		{
			name:     "empty language falls back",
			company:  "Acme",
			language: "",
			ext:      "html",
			expected: "Acme_English_Report.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ArtifactName(tt.company, tt.language, tt.ext)
			if got != tt.expected {
				t.Errorf("ArtifactName() = %q, want %q", got, tt.expected)
			}
		})
	}
}
