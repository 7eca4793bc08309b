package mdexport

import (
	"fmt"
	"slices"
	"strings"
)

// Format identifies an output rendition.
type Format string

// Supported output formats.
const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

// AllFormats returns every supported format in rendering order.
func AllFormats() []Format {
	return []Format{FormatHTML, FormatPDF, FormatDOCX, FormatText}
}

// ParseFormat parses a format name (case-insensitive, leading dot allowed).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	if f == "text" {
		return FormatText, nil
	}
	if !slices.Contains(AllFormats(), f) {
		return "", fmt.Errorf("%w: %q (must be html, pdf, docx or txt)", ErrUnknownFormat, s)
	}
	return f, nil
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.75
)

// paperSizes maps page sizes to portrait width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, ok := paperSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// Dimensions returns the paper width and height in inches, honoring
// orientation. Unknown sizes fall back to A4.
func (p *PageSettings) Dimensions() (width, height float64) {
	dims, ok := paperSizes[strings.ToLower(p.Size)]
	if !ok {
		dims = paperSizes[PageSizeA4]
	}
	width, height = dims[0], dims[1]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		width, height = height, width
	}
	return width, height
}

// orDefault returns p, or the default settings when p is nil.
func (p *PageSettings) orDefault() *PageSettings {
	if p == nil {
		return DefaultPageSettings()
	}
	return p
}

// Document field length limits.
const (
	MaxTitleLength       = 200
	MaxSubtitleLength    = 200
	MaxDescriptionLength = 1000
	MaxFooterLineLength  = 500
	MaxFooterLines       = 10
	MaxDateLength        = 30
)

// Document carries the title block and footer written around the body in
// every rendition.
type Document struct {
	Title       string   // header banner, HTML <title>, DOCX title page, text banner
	Subtitle    string   // optional
	Description string   // optional
	Footer      []string // optional footer lines
	Date        string   // optional, appended as the last footer line
}

// Validate checks field lengths.
// Returns nil if d is nil (nil means no title block or footer).
func (d *Document) Validate() error {
	if d == nil {
		return nil
	}
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"title", d.Title, MaxTitleLength},
		{"subtitle", d.Subtitle, MaxSubtitleLength},
		{"description", d.Description, MaxDescriptionLength},
		{"date", d.Date, MaxDateLength},
	}
	for _, f := range fields {
		if len(f.value) > f.max {
			return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, f.name, len(f.value), f.max)
		}
	}
	if len(d.Footer) > MaxFooterLines {
		return fmt.Errorf("%w: footer (%d lines, max %d)", ErrFieldTooLong, len(d.Footer), MaxFooterLines)
	}
	for i, line := range d.Footer {
		if len(line) > MaxFooterLineLength {
			return fmt.Errorf("%w: footer[%d] (%d chars, max %d)", ErrFieldTooLong, i, len(line), MaxFooterLineLength)
		}
	}
	return nil
}

// footerLines returns the footer lines with the date appended.
func (d *Document) footerLines() []string {
	if d == nil {
		return nil
	}
	lines := slices.Clone(d.Footer)
	if d.Date != "" {
		lines = append(lines, d.Date)
	}
	return lines
}

// Input contains conversion parameters.
type Input struct {
	Markdown  string        // Markdown content (required)
	SourceDir string        // Source directory for resolving relative paths (optional)
	Formats   []Format      // Renditions to produce (empty = all)
	Document  *Document     // Title block and footer (optional)
	CSS       string        // Custom CSS appended after the converter style (optional)
	Page      *PageSettings // PDF page settings (optional, nil = defaults)
}

// wants reports whether the input requests format f.
func (in Input) wants(f Format) bool {
	return len(in.Formats) == 0 || slices.Contains(in.Formats, f)
}

// Result holds the renditions produced by a conversion. Fields for formats
// that were not requested, or that failed, are nil.
type Result struct {
	HTML      []byte
	PDF       []byte
	PDFEngine string // name of the engine that rendered PDF
	DOCX      []byte
	Text      []byte

	// Fallback holds the raw Markdown when a PDF or DOCX rendition failed.
	Fallback []byte

	// Failures lists renditions that could not be produced.
	Failures []RenditionError
}

// Failed reports whether the rendition for f failed.
func (r *Result) Failed(f Format) bool {
	for _, fe := range r.Failures {
		if fe.Format == f {
			return true
		}
	}
	return false
}

// RenditionError records a failed rendition.
type RenditionError struct {
	Format Format
	Err    error
}

func (e RenditionError) Error() string {
	return fmt.Sprintf("%s rendition: %v", e.Format, e.Err)
}

func (e RenditionError) Unwrap() error {
	return e.Err
}
