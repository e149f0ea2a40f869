package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alnah/go-reportpdf"
	"github.com/alnah/go-reportpdf/internal/hints"
)

// Sentinel errors for run operations.
var (
	ErrNoConfigs      = errors.New("no config files given")
	ErrNoSectionFiles = errors.New("no section files found")
)

// run executes report generation for every config, in parallel through the
// pool when more than one config is given.
func run(args []string, pool *reportpdf.ServicePool) error {
	flags, configPaths, err := parseFlags(args)
	if err != nil {
		return err
	}

	// Timeout errors surface here; serviceOptions already skipped the value.
	if _, err := parseTimeout(flags.timeout); err != nil {
		return err
	}

	if len(configPaths) == 0 && flags.common.config != "" {
		configPaths = []string{flags.common.config}
	}
	if len(configPaths) == 0 {
		printUsage(os.Stderr)
		return ErrNoConfigs
	}

	if len(configPaths) == 1 {
		svc := pool.Acquire()
		defer pool.Release(svc)
		return processConfig(flags, configPaths[0], svc)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(configPaths))

	for i, path := range configPaths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			svc := pool.Acquire()
			defer pool.Release(svc)

			if err := processConfig(flags, path, svc); err != nil {
				errs[i] = fmt.Errorf("%s: %w", path, err)
			}
		}(i, path)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// processConfig generates one report from one config file.
func processConfig(flags *generateFlags, configPath string, svc *reportpdf.Service) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	warnf := func(format string, args ...any) {
		if !flags.common.quiet {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}

	sections, err := loadSections(cfg, warnf)
	if err != nil {
		return err
	}

	input := reportpdf.GenerateInput{
		Sections:            sections,
		Meta:                mergeReportMeta(cfg.Report, flags.meta),
		Style:               firstNonEmpty(flags.assets.style, cfg.Assets.Style),
		Template:            firstNonEmpty(flags.assets.template, cfg.Assets.Template),
		SourceLabels:        cfg.Sources.Labels,
		MaxURLDisplayLength: cfg.Sources.MaxURLDisplayLength,
		CoerceParagraphs:    cfg.Sources.CoerceParagraphs,
		DebugDir:            firstNonEmpty(flags.debugDir, cfg.Debug.HTMLDir),
		HTMLOnly:            flags.htmlOnly,
	}

	if flags.common.verbose {
		fmt.Fprintf(os.Stderr, "Generating report from %s (%d sections)\n", configPath, len(sections))
	}

	result, err := svc.Generate(context.Background(), input)
	if err != nil {
		return err
	}

	outPath, err := resolveOutputPath(flags.output, cfg.Output.Dir, result.Filename)
	if err != nil {
		return err
	}

	content := result.PDF
	if flags.htmlOnly {
		content = []byte(result.HTML)
	}
	if err := os.WriteFile(outPath, content, 0o600); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", outPath, len(content))
	}
	return nil
}

// loadSections reads every configured section's Markdown file in order.
// Missing files are skipped with a warning; zero resolvable sections is fatal.
func loadSections(cfg *Config, warnf func(format string, args ...any)) ([]reportpdf.RawSection, error) {
	sections := make([]reportpdf.RawSection, 0, len(cfg.Sections))

	for _, sc := range cfg.Sections {
		if sc.ID == "" {
			warnf("skipping section with empty id")
			continue
		}

		path := filepath.Join(cfg.Input.SectionsDir, sc.ID+".md")
		data, err := os.ReadFile(path) // #nosec G304 -- path built from user config
		if err != nil {
			warnf("skipping section %s: %v", sc.ID, err)
			continue
		}

		title := sc.Title
		if title == "" {
			title = titleFromID(sc.ID)
		}

		sections = append(sections, reportpdf.RawSection{
			ID:      sc.ID,
			Title:   title,
			RawText: string(data),
		})
	}

	if len(sections) == 0 {
		return nil, fmt.Errorf("%w%s", ErrNoSectionFiles, hints.ForNoSections(cfg.Input.SectionsDir))
	}
	return sections, nil
}

// mergeReportMeta applies flag overrides on top of config metadata.
func mergeReportMeta(cfg ReportConfig, f reportMetaFlags) reportpdf.ReportMeta {
	return reportpdf.ReportMeta{
		CompanyName:    firstNonEmpty(f.company, cfg.CompanyName),
		ReportType:     firstNonEmpty(f.reportType, cfg.ReportType),
		Language:       firstNonEmpty(f.language, cfg.Language),
		GenerationDate: firstNonEmpty(f.date, cfg.GenerationDate),
		LogoURL:        firstNonEmpty(f.logo, cfg.LogoURL),
		FaviconURL:     firstNonEmpty(f.favicon, cfg.FaviconURL),
	}
}

// resolveOutputPath determines where the artifact lands. An --output value
// with the artifact's extension is taken as the exact file path; otherwise
// --output (or the config output dir, or the working directory) is a
// directory that receives the derived filename.
func resolveOutputPath(outputFlag, configDir, filename string) (string, error) {
	ext := filepath.Ext(filename)

	if outputFlag != "" && strings.EqualFold(filepath.Ext(outputFlag), ext) {
		if dir := filepath.Dir(outputFlag); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return "", fmt.Errorf("creating output directory: %w", err)
			}
		}
		return outputFlag, nil
	}

	dir := firstNonEmpty(outputFlag, configDir, ".")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	return filepath.Join(dir, filename), nil
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
