package main

import (
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-reportpdf"
	"github.com/alnah/go-reportpdf/internal/assets"
)

// commonFlags holds flags shared by every invocation.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// reportMetaFlags holds report metadata overrides.
type reportMetaFlags struct {
	company    string
	reportType string
	language   string
	date       string
	logo       string
	favicon    string
}

// assetFlags holds asset selection flags.
type assetFlags struct {
	style     string
	template  string
	assetPath string
}

// generateFlags holds all CLI flags.
type generateFlags struct {
	common   commonFlags
	meta     reportMetaFlags
	assets   assetFlags
	output   string
	workers  int
	timeout  string
	debugDir string
	htmlOnly bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addReportMetaFlags adds report metadata override flags to a FlagSet.
func addReportMetaFlags(fs *flag.FlagSet, f *reportMetaFlags) {
	fs.StringVar(&f.company, "company", "", "company name shown on the cover")
	fs.StringVar(&f.reportType, "report-type", "", "report type label (default: Analysis)")
	fs.StringVar(&f.language, "language", "", "report language label (default: English)")
	fs.StringVar(&f.date, "date", "", "generation date shown on cover and footer")
	fs.StringVar(&f.logo, "logo", "", "cover logo URL")
	fs.StringVar(&f.favicon, "favicon", "", "favicon URL for the HTML head")
}

// addAssetFlags adds asset selection flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name")
	fs.StringVar(&f.template, "template", "", "report template name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// parseFlags parses CLI flags and returns positional args (config files).
func parseFlags(args []string) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("reportpdf", flag.ContinueOnError)
	f := &generateFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory or file path")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.debugDir, "debug-dir", "", "write intermediate HTML artifacts to this directory")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip PDF")

	addCommonFlags(fs, &f.common)
	addReportMetaFlags(fs, &f.meta)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseTimeout converts the --timeout string to a duration.
// Empty means zero (use the service default).
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", s)
	}
	return d, nil
}

// serviceOptions derives pooled-service options from flags. Per-config
// settings (sources policy) travel through GenerateInput instead, since one
// pool serves all configs.
func serviceOptions(f *generateFlags) []reportpdf.Option {
	var opts []reportpdf.Option

	if d, err := parseTimeout(f.timeout); err == nil && d > 0 {
		opts = append(opts, reportpdf.WithTimeout(d))
	}
	if f.debugDir != "" {
		opts = append(opts, reportpdf.WithDebugDir(f.debugDir))
	}
	if f.assets.assetPath != "" {
		if loader, err := assets.NewFilesystemLoader(f.assets.assetPath); err == nil {
			opts = append(opts, reportpdf.WithAssetLoader(loader))
		}
	}
	if f.common.verbose {
		opts = append(opts, reportpdf.WithAssemblerOptions(
			reportpdf.WithLogf(func(format string, args ...any) {
				fmt.Fprintf(os.Stderr, format+"\n", args...)
			}),
		))
	}

	return opts
}
