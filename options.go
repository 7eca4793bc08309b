package mdexport

import (
	"time"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	styleInput    string   // name, file path, or CSS content
	resolvedStyle string   // CSS content after resolution
	assetPath     string   // custom asset directory
	pdfEngines    []string // engine names in priority order
	templateSet   *TemplateSet
	codeStyle     string
	docxTitlePage bool
	docxPageBreak bool
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-engine PDF timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdexport: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the CSS style. Accepts a built-in style name ("default",
// "guide"), a file path (contains / or \), or raw CSS content (contains {).
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath sets a custom directory for styles and templates, with
// fallback to the embedded assets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom AssetLoader. Takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.assetLoader = loader
	}
}

// WithTemplateSet sets the page template directly, bypassing the loader.
func WithTemplateSet(ts *TemplateSet) Option {
	return func(c *Converter) {
		c.cfg.templateSet = ts
	}
}

// WithPDFEngines sets the PDF engines to try, in priority order.
// Known names: "weasyprint", "wkhtmltopdf", "chrome".
func WithPDFEngines(names ...string) Option {
	return func(c *Converter) {
		c.cfg.pdfEngines = names
	}
}

// WithCodeStyle sets the chroma style used to highlight fenced code.
func WithCodeStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.codeStyle = name
	}
}

// WithDOCXPageBreak ends the DOCX title page with a page break instead of a
// blank paragraph.
func WithDOCXPageBreak(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.docxPageBreak = enabled
	}
}

// WithDOCXTitlePage controls whether the DOCX rendition opens with a title
// page built from Input.Document. Enabled by default.
func WithDOCXTitlePage(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.docxTitlePage = enabled
	}
}

// withEngines injects engine instances directly (tests).
func withEngines(engines ...PDFEngine) Option {
	return func(c *Converter) {
		c.pdf = newPDFChain(engines...)
	}
}
