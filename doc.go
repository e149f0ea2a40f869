// Package reportpdf assembles multi-section Markdown reports into styled
// HTML documents and renders them to PDF via headless Chrome.
//
// The assembly pipeline runs each section through front-matter extraction,
// main/sources splitting, Markdown rendering with structural annotation,
// topic extraction, and sources normalization, then builds a document with
// a hierarchical table of contents and a combined sources trailer.
//
// Basic usage:
//
//	svc := reportpdf.New()
//	defer svc.Close()
//
//	result, err := svc.Generate(ctx, reportpdf.GenerateInput{
//		Sections: []reportpdf.RawSection{
//			{ID: "market_overview", Title: "Market Overview", RawText: markdown},
//		},
//		Meta: reportpdf.ReportMeta{CompanyName: "Acme", GenerationDate: "2026-08-24"},
//	})
//
// For parallel generation of many reports, use ServicePool: each pooled
// Service owns its converter instances and browser, so concurrent reports
// never share converter state.
package reportpdf
