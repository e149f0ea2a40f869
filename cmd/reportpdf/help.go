package main

import (
	"fmt"
	"io"
)

// printUsage writes CLI usage to w.
func printUsage(w io.Writer) {
	fmt.Fprintf(w, `reportpdf %s - assemble Markdown sections into a PDF report

Usage:
  reportpdf [flags] <config.yaml>...

Each config declares the section order, input/output directories, and report
metadata. Section Markdown files live at <sectionsDir>/<id>.md. Multiple
configs are processed in parallel.

Flags:
  -c, --config string      config file name or path (alternative to positional)
  -o, --output string      output directory, or exact file path
  -w, --workers int        parallel workers (0 = auto)
  -t, --timeout string     PDF generation timeout (e.g., 30s, 2m)
      --company string     company name shown on the cover
      --report-type string report type label (default: Analysis)
      --language string    report language label (default: English)
      --date string        generation date shown on cover and footer
      --logo string        cover logo URL
      --favicon string     favicon URL for the HTML head
      --style string       CSS style name
      --template string    report template name
      --asset-path string  custom asset directory
      --debug-dir string   write intermediate HTML artifacts here
      --html-only          output HTML only, skip PDF
  -q, --quiet              only show errors
  -v, --verbose            show detailed progress

Config example:

  sections:
    - id: market_overview
      title: Market Overview
    - id: competitive_landscape
  input:
    sectionsDir: ./sections
  output:
    dir: ./out
  report:
    companyName: Acme Corp
    generationDate: "2026-08-24"
  sources:
    maxUrlDisplayLength: 60
    coerceParagraphs: true
`, Version)
}
