package mdexport

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"slices"

	"github.com/alnah/go-mdexport/internal/assets"
	"github.com/alnah/go-mdexport/internal/docx"
	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/pipeline"
	"github.com/alnah/go-mdexport/internal/plaintext"
	"github.com/alnah/go-mdexport/internal/transliterate"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.TextPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pipeline.PageAssembler        = (*pipeline.PageTemplate)(nil)
	_ AssetLoader                   = (*assetLoaderAdapter)(nil)
)

// Converter orchestrates the Markdown conversion pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// A Converter is safe for sequential use; use ConverterPool for parallelism.
type Converter struct {
	cfg           converterConfig
	assetLoader   AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	page          pipeline.PageAssembler
	docxRenderer  *docx.Renderer
	pdf           *pdfChain
}

// NewConverter creates a Converter with default configuration.
// Returns error if asset loading, template parsing or engine lookup fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:       defaultTimeout,
			codeStyle:     pipeline.DefaultCodeStyle,
			docxTitlePage: true,
		},
		preprocessor: &pipeline.TextPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.assetLoader == nil {
		loader, err := NewAssetLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.assetLoader = loader
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	templateSet := c.cfg.templateSet
	if templateSet == nil {
		var err error
		templateSet, err = c.assetLoader.LoadTemplateSet(DefaultTemplateSet)
		if err != nil {
			return nil, fmt.Errorf("loading default template set: %w", err)
		}
	}

	page, err := pipeline.NewPageTemplate(templateSet.Page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	c.page = page

	c.htmlConverter = pipeline.NewGoldmarkConverter(c.cfg.codeStyle)

	c.docxRenderer, err = docx.NewRenderer(docx.DefaultStyles())
	if err != nil {
		return nil, err
	}

	// Engines may be injected by tests via withEngines.
	if c.pdf == nil {
		names := c.cfg.pdfEngines
		if len(names) == 0 {
			names = DefaultPDFEngines()
		}
		engines := make([]PDFEngine, 0, len(names))
		for _, name := range names {
			engine, err := NewPDFEngine(name, c.cfg.timeout)
			if err != nil {
				return nil, err
			}
			engines = append(engines, engine)
		}
		c.pdf = newPDFChain(engines...)
	}

	return c, nil
}

// Convert runs the pipeline for every requested format.
//
// Validation errors, HTML conversion errors and context cancellation are
// returned as errors. PDF and DOCX failures are recorded in
// Result.Failures with the raw Markdown in Result.Fallback.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	res := &Result{}

	// PDF is printed from the HTML rendition, so build it for either.
	if input.wants(FormatHTML) || input.wants(FormatPDF) {
		htmlContent, err := c.renderHTML(ctx, input)
		if err != nil {
			return nil, err
		}
		if input.wants(FormatHTML) {
			res.HTML = []byte(htmlContent)
		}

		if input.wants(FormatPDF) {
			pdf, engine, err := c.pdf.Render(ctx, htmlContent, input.Page)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				res.fail(FormatPDF, err, input.Markdown)
			} else {
				res.PDF = pdf
				res.PDFEngine = engine
			}
		}
	}

	if input.wants(FormatDOCX) {
		var buf bytes.Buffer
		directives := transliterate.Transliterate(input.Markdown)
		if err := c.docxRenderer.Render(ctx, &buf, directives, c.titlePage(input.Document)); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			res.fail(FormatDOCX, fmt.Errorf("%w: %v", ErrDOCXGeneration, err), input.Markdown)
		} else {
			res.DOCX = buf.Bytes()
		}
	}

	if input.wants(FormatText) {
		frame := plaintext.Frame{Footer: input.Document.footerLines()}
		if input.Document != nil {
			frame.Title = input.Document.Title
		}
		res.Text = []byte(plaintext.Render(input.Markdown, frame))
	}

	return res, nil
}

// renderHTML produces the complete HTML document.
func (c *Converter) renderHTML(ctx context.Context, input Input) (string, error) {
	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	fragment, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	data := pipeline.PageData{
		Body: template.HTML(fragment), // #nosec G203 -- produced by goldmark without unsafe HTML
	}
	if doc := input.Document; doc != nil {
		data.Title = doc.Title
		data.Header = &pipeline.Banner{
			Title:       doc.Title,
			Subtitle:    doc.Subtitle,
			Description: doc.Description,
		}
		data.Footer = doc.footerLines()
	}

	htmlContent, err := c.page.Assemble(ctx, data)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	// Rewrite relative paths to absolute file:// URLs so PDF engines reading
	// from a temp file still find images.
	if input.SourceDir != "" {
		htmlContent, err = pipeline.RewriteRelativePaths(htmlContent, input.SourceDir)
		if err != nil {
			return "", fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	// Converter style first (base), user CSS last (can override).
	cssContent := c.cfg.resolvedStyle
	if input.CSS != "" {
		if cssContent != "" {
			cssContent += "\n"
		}
		cssContent += input.CSS
	}
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	return htmlContent, nil
}

// titlePage maps the document title block to the DOCX title page.
func (c *Converter) titlePage(doc *Document) *docx.TitlePage {
	if doc == nil || !c.cfg.docxTitlePage {
		return nil
	}
	return &docx.TitlePage{
		Title:       doc.Title,
		Subtitle:    doc.Subtitle,
		Description: doc.Description,
		PageBreak:   c.cfg.docxPageBreak,
	}
}

// fail records a rendition failure and keeps the raw Markdown as fallback.
func (r *Result) fail(format Format, err error, markdown string) {
	r.Failures = append(r.Failures, RenditionError{Format: format, Err: err})
	if r.Fallback == nil {
		r.Fallback = []byte(markdown)
	}
}

// Close releases PDF engine resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdf != nil {
		return c.pdf.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content. An empty input selects the default style.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is the trust boundary for library users who build Input manually.
// CLI input is validated earlier by config.Validate; both paths converge here.
func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	for _, f := range input.Formats {
		if !slices.Contains(AllFormats(), f) {
			return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
		}
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return input.Document.Validate()
}
