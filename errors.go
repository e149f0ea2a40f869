package reportpdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoSections     = errors.New("no sections to assemble")
	ErrTemplateRender = errors.New("report template rendering failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
