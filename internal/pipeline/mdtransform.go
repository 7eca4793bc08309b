package pipeline

import (
	"context"
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// Precompiled patterns.
var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// MarkdownPreprocessor prepares Markdown for HTML conversion.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// TextPreprocessor normalizes Markdown text before Goldmark sees it.
type TextPreprocessor struct{}

// PreprocessMarkdown normalizes line endings to \n, composes Unicode to NFC
// (so decomposed accents from some editors render as single glyphs) and
// compresses runs of blank lines.
// Returns content unchanged if ctx is already canceled.
func (p *TextPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = norm.NFC.String(content)
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
