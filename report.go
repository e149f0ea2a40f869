package reportpdf

import (
	"fmt"
	"html/template"
	"strings"
)

// reportView is the data handed to the report template.
type reportView struct {
	Title          string
	CompanyName    string
	ReportType     string
	GenerationDate string
	LogoURL        string
	FaviconURL     string

	StyleCSS template.CSS

	Toc                 []TocEntry
	Sections            []sectionView
	CombinedSourcesHTML template.HTML
}

// sectionView wraps a Section with its HTML marked safe for the template.
// The fragments come from our own rendering pipeline, not from user HTML.
type sectionView struct {
	AnchorID           string
	Title              string
	IsEmpty            bool
	Intro              string
	Topics             []string
	ReadingTimeMinutes int
	MainHTML           template.HTML
}

// renderReportHTML executes the report template against an assembled
// document, inlining the stylesheet into the page head.
func renderReportHTML(templateSrc, css string, doc *Document, meta ReportMeta) (string, error) {
	tmpl, err := template.New("report").Parse(templateSrc)
	if err != nil {
		return "", fmt.Errorf("%w: parsing: %v", ErrTemplateRender, err)
	}

	meta = meta.withDefaults()

	view := reportView{
		Title:               meta.Title(),
		CompanyName:         meta.CompanyName,
		ReportType:          meta.ReportType,
		GenerationDate:      meta.GenerationDate,
		LogoURL:             meta.LogoURL,
		FaviconURL:          meta.FaviconURL,
		StyleCSS:            template.CSS(css),
		Toc:                 doc.Toc,
		Sections:            make([]sectionView, 0, len(doc.Sections)),
		CombinedSourcesHTML: template.HTML(doc.CombinedSourcesHTML),
	}

	for _, sec := range doc.Sections {
		view.Sections = append(view.Sections, sectionView{
			AnchorID:           sec.AnchorID,
			Title:              sec.Title,
			IsEmpty:            sec.IsEmpty,
			Intro:              sec.IntroText,
			Topics:             sec.Topics,
			ReadingTimeMinutes: sec.ReadingTimeMinutes,
			MainHTML:           template.HTML(sec.MainHTML),
		})
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("%w: executing: %v", ErrTemplateRender, err)
	}
	return sb.String(), nil
}
