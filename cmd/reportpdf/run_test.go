package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-reportpdf"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	flags, args, err := parseFlags([]string{
		"reportpdf",
		"--company", "Acme",
		"--workers", "3",
		"--html-only",
		"-v",
		"report.yaml", "other.yaml",
	})
	if err != nil {
		t.Fatal(err)
	}

	if flags.meta.company != "Acme" {
		t.Errorf("company = %q", flags.meta.company)
	}
	if flags.workers != 3 {
		t.Errorf("workers = %d", flags.workers)
	}
	if !flags.htmlOnly || !flags.common.verbose {
		t.Errorf("flags = %+v", flags)
	}
	if len(args) != 2 || args[0] != "report.yaml" {
		t.Errorf("positional args = %v", args)
	}
}

func TestParseTimeout(t *testing.T) {
	t.Parallel()

	if d, err := parseTimeout(""); err != nil || d != 0 {
		t.Errorf("empty timeout: %v %v", d, err)
	}
	if d, err := parseTimeout("45s"); err != nil || d != 45*time.Second {
		t.Errorf("45s: %v %v", d, err)
	}
	if _, err := parseTimeout("bogus"); err == nil {
		t.Error("expected error for bogus timeout")
	}
	if _, err := parseTimeout("-5s"); err == nil {
		t.Error("expected error for negative timeout")
	}
}

func TestLoadSectionsSkipsMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "present.md"), []byte("# Present\n\ntext"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{
		Sections: []SectionConfig{
			{ID: "present"},
			{ID: "absent"},
			{ID: ""},
		},
		Input: InputConfig{SectionsDir: dir},
	}

	var warnings []string
	sections, err := loadSections(cfg, func(format string, args ...any) {
		warnings = append(warnings, format)
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(sections) != 1 || sections[0].ID != "present" {
		t.Fatalf("sections = %+v", sections)
	}
	if sections[0].Title != "Present" {
		t.Errorf("derived title = %q, want Present", sections[0].Title)
	}
	if len(warnings) != 2 {
		t.Errorf("warnings = %v, want 2", warnings)
	}
}

func TestLoadSectionsAllMissing(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Sections: []SectionConfig{{ID: "absent"}},
		Input:    InputConfig{SectionsDir: t.TempDir()},
	}

	_, err := loadSections(cfg, func(string, ...any) {})
	if !errors.Is(err, ErrNoSectionFiles) {
		t.Fatalf("err = %v, want ErrNoSectionFiles", err)
	}
	if !strings.Contains(err.Error(), "hint:") {
		t.Errorf("error missing hint: %v", err)
	}
}

func TestMergeReportMeta(t *testing.T) {
	t.Parallel()

	cfg := ReportConfig{CompanyName: "FromConfig", Language: "German", GenerationDate: "2026-01-01"}
	f := reportMetaFlags{company: "FromFlag", date: "2026-08-24"}

	meta := mergeReportMeta(cfg, f)
	if meta.CompanyName != "FromFlag" {
		t.Errorf("company = %q, flag should win", meta.CompanyName)
	}
	if meta.Language != "German" {
		t.Errorf("language = %q, config should survive", meta.Language)
	}
	if meta.GenerationDate != "2026-08-24" {
		t.Errorf("date = %q, flag should win", meta.GenerationDate)
	}
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	t.Run("exact file path", func(t *testing.T) {
		t.Parallel()
		want := filepath.Join(base, "custom", "mine.pdf")
		got, err := resolveOutputPath(want, "", "Acme_English_Report.pdf")
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})

	t.Run("output dir plus derived name", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(base, "outdir")
		got, err := resolveOutputPath(dir, "", "Acme_English_Report.pdf")
		if err != nil {
			t.Fatal(err)
		}
		if got != filepath.Join(dir, "Acme_English_Report.pdf") {
			t.Errorf("path = %q", got)
		}
	})

	t.Run("config dir fallback", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(base, "cfgdir")
		got, err := resolveOutputPath("", dir, "R.html")
		if err != nil {
			t.Fatal(err)
		}
		if got != filepath.Join(dir, "R.html") {
			t.Errorf("path = %q", got)
		}
	})
}

// End-to-end HTML-only run: no browser involved.
func TestRunHTMLOnly(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	sectionsDir := filepath.Join(base, "sections")
	outDir := filepath.Join(base, "out")
	if err := os.MkdirAll(sectionsDir, 0o750); err != nil {
		t.Fatal(err)
	}

	sectionMD := "---\ntitle: X\n---\n## Overview\n\nOpening prose.\n\n## Sources\n- [Ref](http://example.com)"
	if err := os.WriteFile(filepath.Join(sectionsDir, "overview.md"), []byte(sectionMD), 0o600); err != nil {
		t.Fatal(err)
	}

	configYAML := "sections:\n  - id: overview\ninput:\n  sectionsDir: " + sectionsDir + "\noutput:\n  dir: " + outDir + "\nreport:\n  companyName: Acme\n"
	configPath := filepath.Join(base, "report.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	pool := reportpdf.NewServicePool(1)
	defer pool.Close()

	err := run([]string{"reportpdf", "--html-only", "--quiet", configPath}, pool)
	if err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(outDir, "Acme_English_Report.html")
	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.Contains(string(content), "Opening prose.") {
		t.Error("output HTML missing section content")
	}
}

func TestRunNoConfigs(t *testing.T) {
	t.Parallel()

	pool := reportpdf.NewServicePool(1)
	defer pool.Close()

	err := run([]string{"reportpdf"}, pool)
	if !errors.Is(err, ErrNoConfigs) {
		t.Fatalf("err = %v, want ErrNoConfigs", err)
	}
}
