package reportpdf

import (
	"strings"
	"testing"
)

func TestBuildPDFOptionsDefaults(t *testing.T) {
	t.Parallel()

	opts := buildPDFOptions(nil)

	if *opts.PaperWidth != paperWidthInches || *opts.PaperHeight != paperHeightInches {
		t.Errorf("paper = %v x %v", *opts.PaperWidth, *opts.PaperHeight)
	}
	if *opts.MarginBottom != marginInches {
		t.Errorf("bottom margin = %v, want %v", *opts.MarginBottom, marginInches)
	}
	if opts.DisplayHeaderFooter {
		t.Error("footer enabled without a date")
	}
	if !opts.PrintBackground {
		t.Error("backgrounds must print")
	}
}

func TestBuildPDFOptionsWithFooter(t *testing.T) {
	t.Parallel()

	opts := buildPDFOptions(&pdfOptions{FooterDate: "2026-08-24"})

	if !opts.DisplayHeaderFooter {
		t.Fatal("footer not enabled")
	}
	if *opts.MarginBottom != marginBottomWithFooter {
		t.Errorf("bottom margin = %v, want %v", *opts.MarginBottom, marginBottomWithFooter)
	}
	if !strings.Contains(opts.FooterTemplate, "2026-08-24") {
		t.Errorf("footer template missing date: %s", opts.FooterTemplate)
	}
	if !strings.Contains(opts.FooterTemplate, `class="pageNumber"`) {
		t.Error("footer template missing page counter")
	}
	if opts.HeaderTemplate != "<span></span>" {
		t.Errorf("header template = %q", opts.HeaderTemplate)
	}
}

func TestBuildFooterTemplateEscapesDate(t *testing.T) {
	t.Parallel()

	tmpl := buildFooterTemplate(`<img src=x>`)
	if strings.Contains(tmpl, "<img") {
		t.Errorf("date not escaped: %s", tmpl)
	}
}

func TestRodConverterCloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	c := newRodConverter(defaultTimeout)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	r := newRodRenderer(defaultTimeout)
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
}
