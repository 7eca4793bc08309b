// Package mdexport converts Markdown documents to HTML, PDF, DOCX and plain
// text in one pass.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := mdexport.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdexport.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// # Renditions
//
// Each rendition is produced from the same source:
//
//   - HTML: preprocessing, Goldmark (GFM, syntax highlighting), page
//     template, CSS injection.
//   - PDF: the HTML rendition printed by the first available engine
//     (weasyprint, wkhtmltopdf, then headless Chrome via go-rod).
//   - DOCX: a line-by-line transliteration of the raw Markdown into
//     heading, list and paragraph directives rendered with gooxml.
//   - Text: the raw Markdown framed by title and footer banners.
//
// PDF and DOCX failures do not abort a conversion. They are reported in
// Result.Failures and Result.Fallback carries the raw Markdown so callers
// can still write something useful next to the failed output.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := mdexport.NewConverter(
//	    mdexport.WithTimeout(2 * time.Minute),
//	    mdexport.WithStyle("guide"),
//	    mdexport.WithPDFEngines("chrome"),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, mdexport.Input{
//	    Markdown:  content,
//	    SourceDir: "/path/to/markdown", // for relative image paths
//	    Formats:   []mdexport.Format{mdexport.FormatPDF, mdexport.FormatDOCX},
//	    Document:  &mdexport.Document{Title: "Deployment Guide"},
//	    Page:      &mdexport.PageSettings{Size: "letter", Orientation: "portrait", Margin: 1},
//	})
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool:
//
//	pool := mdexport.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil { ... }
//	defer pool.Release(conv)
//
// # PDF Engines
//
// weasyprint and wkhtmltopdf are used when found on PATH. The chrome engine
// downloads a managed Chromium on first use unless ROD_BROWSER_BIN points
// to an installed browser. Set ROD_NO_SANDBOX=1 in containers and CI.
package mdexport
