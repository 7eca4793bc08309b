package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdexport"
)

// addConvertFlags registers every convert flag. Names must match flagKeys
// so viper can bind them.
func addConvertFlags(f *flag.FlagSet) {
	addOutputFlags(f)
	addDocumentFlags(f)
	addStyleFlags(f)
	addPDFFlags(f)
	addDOCXFlags(f)
}

func addOutputFlags(f *flag.FlagSet) {
	f.StringP("output", "o", "", "output directory (default: next to each source)")
	f.StringSliceP("format", "f", nil, "formats to produce: html, pdf, docx, txt (default: all)")
	f.IntP("workers", "w", 0, fmt.Sprintf("parallel conversions, 0 = auto (max %d)", mdexport.MaxPoolSize))
	f.Bool("strict", false, "treat a fallback as a failed conversion")
}

func addDocumentFlags(f *flag.FlagSet) {
	f.String("title", "", "document title (default: first '# ' heading, then file name)")
	f.String("subtitle", "", "document subtitle")
	f.String("description", "", "document description")
	f.StringArray("footer", nil, "footer line (repeatable)")
	f.String("date", "", `footer date: literal, "auto" or "auto:FORMAT" (e.g. auto:DD/MM/YYYY)`)
}

func addStyleFlags(f *flag.FlagSet) {
	f.StringP("style", "s", "", "style name, .css file or inline CSS (default: default)")
	f.String("css", "", "extra CSS file appended after the style")
	f.String("asset-path", "", "directory overriding embedded styles and templates")
}

func addPDFFlags(f *flag.FlagSet) {
	f.StringSlice("engine", nil, "PDF engines in priority order (default: weasyprint,wkhtmltopdf,chrome)")
	f.String("page-size", "", "PDF page size: letter, a4, legal (default: a4)")
	f.String("orientation", "", "PDF orientation: portrait, landscape (default: portrait)")
	f.Float64("margin", 0, fmt.Sprintf("PDF margin in inches, %.2f to %.1f (default: %.2f)",
		mdexport.MinMargin, mdexport.MaxMargin, mdexport.DefaultMargin))
	f.Duration("timeout", 0, "per-engine PDF timeout (default: 30s)")
}

func addDOCXFlags(f *flag.FlagSet) {
	f.Bool("docx-title-page", true, "start DOCX output with a title page")
	f.Bool("docx-page-break", true, "end the DOCX title page with a page break")
}
