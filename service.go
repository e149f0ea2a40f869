package reportpdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-reportpdf/internal/assets"
	"github.com/alnah/go-reportpdf/internal/fileutil"
)

// defaultTimeout bounds PDF rendering when the caller's context has no deadline.
const defaultTimeout = 60 * time.Second

// serviceConfig holds service-level configuration.
type serviceConfig struct {
	timeout       time.Duration
	debugDir      string
	assemblerOpts []AssemblerOption
}

// Service orchestrates the report pipeline: assembly, HTML template
// rendering, and PDF generation.
//
// A Service owns its converter instances and browser; it must not be used
// concurrently. For parallel generation use ServicePool.
type Service struct {
	cfg          serviceConfig
	loader       assets.AssetLoader
	pdfConverter pdfConverter
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout sets the PDF rendering timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.cfg.timeout = d
		}
	}
}

// WithAssetLoader replaces the embedded asset loader, e.g. with a
// filesystem loader pointing at a custom asset directory.
func WithAssetLoader(loader assets.AssetLoader) Option {
	return func(s *Service) {
		s.loader = loader
	}
}

// WithDebugDir enables debug HTML artifacts: per-section fragments, the
// combined sources block, and the fully rendered page are written to dir.
func WithDebugDir(dir string) Option {
	return func(s *Service) {
		s.cfg.debugDir = dir
	}
}

// WithAssemblerOptions forwards options to the service's Assembler.
func WithAssemblerOptions(opts ...AssemblerOption) Option {
	return func(s *Service) {
		s.cfg.assemblerOpts = append(s.cfg.assemblerOpts, opts...)
	}
}

// withPDFConverter injects a converter backend; used by tests.
func withPDFConverter(c pdfConverter) Option {
	return func(s *Service) {
		s.pdfConverter = c
	}
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:    serviceConfig{timeout: defaultTimeout},
		loader: assets.NewEmbeddedLoader(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if s.pdfConverter == nil {
		s.pdfConverter = newRodConverter(s.cfg.timeout)
	}

	return s
}

// GenerateInput contains report generation parameters.
type GenerateInput struct {
	Sections []RawSection // Ordered input sections (required)
	Meta     ReportMeta   // Report-level metadata (optional fields get defaults)

	// Asset names without extension; empty means the built-in defaults.
	Style    string
	Template string

	// Per-run assembly policy overrides; zero values keep the service-level
	// (or default) settings.
	SourceLabels        []string
	MaxURLDisplayLength int
	CoerceParagraphs    bool

	// DebugDir overrides the service-level debug artifact directory for
	// this run.
	DebugDir string

	// HTMLOnly stops after template rendering; no browser is involved and
	// GenerateResult.PDF stays nil.
	HTMLOnly bool
}

// assemblerOptions combines service-level assembler options with per-run
// input overrides.
func (s *Service) assemblerOptions(input GenerateInput) []AssemblerOption {
	opts := make([]AssemblerOption, 0, len(s.cfg.assemblerOpts)+3)
	opts = append(opts, s.cfg.assemblerOpts...)

	if len(input.SourceLabels) > 0 {
		opts = append(opts, WithSourceLabels(input.SourceLabels))
	}
	if input.MaxURLDisplayLength > 0 {
		opts = append(opts, WithMaxURLDisplayLength(input.MaxURLDisplayLength))
	}
	if input.CoerceParagraphs {
		opts = append(opts, WithParagraphCoercion(true))
	}
	return opts
}

// GenerateResult is the outcome of one report generation.
type GenerateResult struct {
	Document *Document
	HTML     string
	PDF      []byte

	// Filename is the suggested output name,
	// "<company>_<language>_Report.pdf" (or .html for HTML-only runs).
	Filename string
}

// Generate runs the full pipeline and returns the rendered report.
// The context is used for cancellation and timeout.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	// Converters are cheap to build and carry per-run policy, so each run
	// gets a fresh assembler; the browser is the only long-lived resource.
	doc, err := NewAssembler(s.assemblerOptions(input)...).Assemble(input.Sections)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	templateName := input.Template
	if templateName == "" {
		templateName = assets.DefaultTemplateName
	}
	templateSrc, err := s.loader.LoadTemplate(templateName)
	if err != nil {
		return nil, fmt.Errorf("loading template %q: %w", templateName, err)
	}

	styleName := input.Style
	if styleName == "" {
		styleName = assets.DefaultStyleName
	}
	css, err := s.loader.LoadStyle(styleName)
	if err != nil {
		return nil, fmt.Errorf("loading style %q: %w", styleName, err)
	}

	meta := input.Meta.withDefaults()

	htmlContent, err := renderReportHTML(templateSrc, css, doc, meta)
	if err != nil {
		return nil, err
	}

	debugDir := input.DebugDir
	if debugDir == "" {
		debugDir = s.cfg.debugDir
	}
	if debugDir != "" {
		writeDebugArtifacts(debugDir, doc, htmlContent)
	}

	result := &GenerateResult{
		Document: doc,
		HTML:     htmlContent,
		Filename: fileutil.ArtifactName(meta.CompanyName, meta.Language, "pdf"),
	}

	if input.HTMLOnly {
		result.Filename = fileutil.ArtifactName(meta.CompanyName, meta.Language, "html")
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdfBytes, err := s.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{FooterDate: meta.GenerationDate})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	result.PDF = pdfBytes

	return result, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.pdfConverter != nil {
		return s.pdfConverter.Close()
	}
	return nil
}

// writeDebugArtifacts dumps intermediate HTML to the debug directory.
// Failures are ignored; debug output never breaks generation.
func writeDebugArtifacts(dir string, doc *Document, rendered string) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return
	}

	write := func(name, content string) {
		path := filepath.Join(dir, fileutil.SanitizeFilename(name))
		_ = os.WriteFile(path, []byte(content), 0o600)
	}

	for _, sec := range doc.Sections {
		if sec.IsEmpty {
			continue
		}
		write("debug_"+sec.ID+".html", sec.MainHTML)
	}
	if doc.CombinedSourcesHTML != "" {
		write("all_sources.html", doc.CombinedSourcesHTML)
	}
	write("rendered_template.html", rendered)
}
