package mdexport

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrUnknownFormat  = errors.New("unknown output format")

	// PDF engine errors.
	ErrNoPDFEngine      = errors.New("no PDF engine could render the document")
	ErrUnknownPDFEngine = errors.New("unknown PDF engine")
	ErrEngineNotFound   = errors.New("PDF engine binary not found")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")

	// DOCX errors.
	ErrDOCXGeneration = errors.New("DOCX generation failed")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Document validation errors.
	ErrFieldTooLong = errors.New("field exceeds maximum length")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
	ErrTemplateParse         = errors.New("page template parsing failed")

	ErrPoolClosed = errors.New("converter pool is closed")
)
