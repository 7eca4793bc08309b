// Package docx renders transliterated Markdown directives into a Word
// document using gooxml.
//
// The renderer maps each directive kind to a paragraph style and appends
// paragraphs in the order received. Inline formatting, tables and nested
// lists are not represented: every directive becomes one paragraph with a
// single text run.
package docx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
	"baliance.com/gooxml/schema/soo/wml"

	"github.com/alnah/go-mdexport/internal/transliterate"
)

// Sentinel errors for DOCX rendering.
var (
	ErrDocxWrite    = errors.New("failed to write DOCX document")
	ErrNilWriter    = errors.New("nil writer")
	ErrUnknownKind  = errors.New("unknown directive kind")
	ErrEmptyStyleID = errors.New("style ID cannot be empty")
)

// Styles names the paragraph style ID used for each construct.
// IDs follow Word's built-in names without spaces ("List Bullet" -> "ListBullet").
type Styles struct {
	Title    string
	Subtitle string
	Heading1 string
	Heading2 string
	Heading3 string
	Heading4 string
	Bullet   string
	Numbered string
}

// DefaultStyles returns Word's built-in style IDs.
func DefaultStyles() Styles {
	return Styles{
		Title:    "Title",
		Subtitle: "Heading1",
		Heading1: "Heading1",
		Heading2: "Heading2",
		Heading3: "Heading3",
		Heading4: "Heading4",
		Bullet:   "ListBullet",
		Numbered: "ListNumber",
	}
}

// validate checks that no style ID is empty.
func (s Styles) validate() error {
	for name, id := range map[string]string{
		"title": s.Title, "subtitle": s.Subtitle,
		"heading1": s.Heading1, "heading2": s.Heading2,
		"heading3": s.Heading3, "heading4": s.Heading4,
		"bullet": s.Bullet, "numbered": s.Numbered,
	} {
		if id == "" {
			return fmt.Errorf("%w: %s", ErrEmptyStyleID, name)
		}
	}
	return nil
}

// styleFor returns the style ID for a directive kind. Paragraph returns "",
// meaning the document default.
func (s Styles) styleFor(kind transliterate.Kind) (string, error) {
	switch kind {
	case transliterate.Heading1:
		return s.Heading1, nil
	case transliterate.Heading2:
		return s.Heading2, nil
	case transliterate.Heading3:
		return s.Heading3, nil
	case transliterate.Heading4:
		return s.Heading4, nil
	case transliterate.BulletItem:
		return s.Bullet, nil
	case transliterate.NumberedItem:
		return s.Numbered, nil
	case transliterate.Paragraph:
		return "", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}

// TitlePage is the optional block written before the document body.
type TitlePage struct {
	Title       string
	Subtitle    string
	Description string
	PageBreak   bool // page break after the block instead of a blank paragraph
}

// empty reports whether the title page has nothing to render.
func (tp *TitlePage) empty() bool {
	return tp == nil || (tp.Title == "" && tp.Subtitle == "" && tp.Description == "")
}

// Renderer builds DOCX documents from directive sequences.
type Renderer struct {
	styles Styles
}

// NewRenderer creates a Renderer with the given styles.
func NewRenderer(styles Styles) (*Renderer, error) {
	if err := styles.validate(); err != nil {
		return nil, err
	}
	return &Renderer{styles: styles}, nil
}

// Render writes a DOCX document to w containing the optional title page
// followed by one paragraph per directive. The context is checked between
// directives.
func (r *Renderer) Render(ctx context.Context, w io.Writer, directives iter.Seq[transliterate.Directive], title *TitlePage) error {
	if w == nil {
		return ErrNilWriter
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := document.New()
	r.ensureStyles(doc)
	lists := addListDefinitions(doc)

	if !title.empty() {
		r.addTitlePage(doc, title)
	}

	for d := range directives {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.addDirective(doc, lists, d); err != nil {
			return err
		}
	}

	if err := doc.Save(w); err != nil {
		return fmt.Errorf("%w: %v", ErrDocxWrite, err)
	}
	return nil
}

// addTitlePage writes the title, subtitle and description, then separates
// them from the body.
func (r *Renderer) addTitlePage(doc *document.Document, tp *TitlePage) {
	if tp.Title != "" {
		addStyledParagraph(doc, r.styles.Title, tp.Title)
	}
	if tp.Subtitle != "" {
		addStyledParagraph(doc, r.styles.Subtitle, tp.Subtitle)
	}
	if tp.Description != "" {
		addStyledParagraph(doc, "", tp.Description)
	}

	if tp.PageBreak {
		doc.AddParagraph().AddRun().AddPageBreak()
		return
	}
	doc.AddParagraph()
}

// listDefinitions holds the numbering used by list items. Numbered items
// share one definition, so numbering runs on across the document.
type listDefinitions struct {
	bullet   document.NumberingDefinition
	numbered document.NumberingDefinition
}

// addListDefinitions registers a bullet and a decimal list in the
// document's numbering part.
func addListDefinitions(doc *document.Document) listDefinitions {
	return listDefinitions{
		bullet:   addListDefinition(doc, wml.ST_NumberFormatBullet, "\u2022"),
		numbered: addListDefinition(doc, wml.ST_NumberFormatDecimal, "%1."),
	}
}

func addListDefinition(doc *document.Document, format wml.ST_NumberFormat, text string) document.NumberingDefinition {
	def := doc.Numbering.AddDefinition()
	lvl := def.AddLevel()
	lvl.SetFormat(format)
	lvl.SetText(text)
	lvl.SetAlignment(wml.ST_JcLeft)
	lvl.Properties().SetLeftIndent(0.5 * measurement.Inch)
	lvl.Properties().SetHangingIndent(0.25 * measurement.Inch)
	return def
}

// addDirective appends a single directive as a styled paragraph. List
// items also get a numbering reference so Word draws the marker.
func (r *Renderer) addDirective(doc *document.Document, lists listDefinitions, d transliterate.Directive) error {
	style, err := r.styles.styleFor(d.Kind)
	if err != nil {
		return err
	}
	para := addStyledParagraph(doc, style, d.Text)

	switch d.Kind {
	case transliterate.BulletItem:
		para.SetNumberingDefinition(lists.bullet)
		para.SetNumberingLevel(0)
	case transliterate.NumberedItem:
		para.SetNumberingDefinition(lists.numbered)
		para.SetNumberingLevel(0)
	}
	return nil
}

// addStyledParagraph appends a paragraph with a single run. An empty style
// keeps the document default.
func addStyledParagraph(doc *document.Document, style, text string) document.Paragraph {
	para := doc.AddParagraph()
	if style != "" {
		para.SetStyle(style)
	}
	para.AddRun().AddText(text)
	return para
}

// ensureStyles declares any configured style the base template lacks so
// that Word shows the style name instead of silently using Normal.
func (r *Renderer) ensureStyles(doc *document.Document) {
	existing := make(map[string]bool)
	for _, s := range doc.Styles.Styles() {
		existing[s.StyleID()] = true
	}

	for _, id := range []string{
		r.styles.Title, r.styles.Subtitle,
		r.styles.Heading1, r.styles.Heading2, r.styles.Heading3, r.styles.Heading4,
		r.styles.Bullet, r.styles.Numbered,
	} {
		if existing[id] {
			continue
		}
		s := doc.Styles.AddStyle(id, wml.ST_StyleTypeParagraph, false)
		s.SetName(id)
		s.SetBasedOn("Normal")
		existing[id] = true
	}
}

// RenderFile renders to a new file at path, replacing any existing file.
func (r *Renderer) RenderFile(ctx context.Context, path string, directives iter.Seq[transliterate.Directive], title *TitlePage) (err error) {
	f, err := os.Create(path) // #nosec G304 -- caller-provided output path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDocxWrite, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrDocxWrite, closeErr)
		}
	}()

	return r.Render(ctx, f, directives, title)
}
