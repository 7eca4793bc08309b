// Package plaintext renders the plain-text rendition: the raw Markdown
// framed by a title banner and a closing banner carrying footer lines.
package plaintext

import (
	"io"
	"strings"
)

// BannerWidth is the width of the "=" rules framing the document.
const BannerWidth = 80

// Frame holds the banner content around the document body.
type Frame struct {
	Title  string
	Footer []string
}

var rule = strings.Repeat("=", BannerWidth)

// Render returns markdown framed by the title and footer banners.
// An empty title omits the opening banner; the closing rule is always
// written so readers can find the end of the document.
func Render(markdown string, frame Frame) string {
	var b strings.Builder
	b.Grow(len(markdown) + 4*BannerWidth)

	if frame.Title != "" {
		b.WriteString(rule)
		b.WriteByte('\n')
		b.WriteString(frame.Title)
		b.WriteByte('\n')
		b.WriteString(rule)
		b.WriteString("\n\n")
	}

	b.WriteString(markdown)
	b.WriteString("\n\n")
	b.WriteString(rule)

	if len(frame.Footer) > 0 {
		for _, line := range frame.Footer {
			b.WriteByte('\n')
			b.WriteString(line)
		}
		b.WriteByte('\n')
		b.WriteString(rule)
	}

	return b.String()
}

// Write renders to w.
func Write(w io.Writer, markdown string, frame Frame) error {
	_, err := io.WriteString(w, Render(markdown, frame))
	return err
}
