package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for page assembly.
var (
	ErrPageTemplateParse  = errors.New("page template parsing failed")
	ErrPageTemplateRender = errors.New("page template rendering failed")
)

// DefaultPageTitle is used when the document has no title.
const DefaultPageTitle = "Document"

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then after <body>, then prepends.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>\n" + sanitizeCSS(cssContent) + "\n</style>\n"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so user CSS cannot close the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// Banner is the header block shown above the document body.
type Banner struct {
	Title       string
	Subtitle    string
	Description string
}

// PageData is the input to the page template.
type PageData struct {
	Lang   string
	Title  string        // <title> content
	Header *Banner       // nil = no header block
	Body   template.HTML // Goldmark output, trusted
	Footer []string      // footer lines, empty = no footer block
}

// PageAssembler wraps an HTML fragment into a complete document.
type PageAssembler interface {
	Assemble(ctx context.Context, data PageData) (string, error)
}

// PageTemplate renders PageData through an html/template.
type PageTemplate struct {
	tmpl *template.Template
}

// NewPageTemplate parses tmplContent as the page template.
func NewPageTemplate(tmplContent string) (*PageTemplate, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageTemplateParse, err)
	}
	return &PageTemplate{tmpl: tmpl}, nil
}

// Assemble renders the page. Empty Title and Lang fall back to
// DefaultPageTitle and "en". An all-empty Header is dropped.
func (p *PageTemplate) Assemble(ctx context.Context, data PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if data.Title == "" {
		data.Title = DefaultPageTitle
	}
	if data.Lang == "" {
		data.Lang = "en"
	}
	if data.Header != nil && *data.Header == (Banner{}) {
		data.Header = nil
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageTemplateRender, err)
	}
	return buf.String(), nil
}
