// Package pipeline implements the Markdown-to-HTML rendition.
//
// Stages, in order:
//   - Markdown preprocessing (line endings, Unicode normalization)
//   - Markdown to HTML fragment via Goldmark (GFM, highlighted fenced code,
//     heading IDs)
//   - Page assembly from an html/template (title, header banner, footer)
//   - CSS injection into the assembled page
//   - Relative path rewriting so PDF engines can resolve local images
//
// The DOCX rendition does not go through this package; it consumes the raw
// Markdown through the transliterate package instead.
package pipeline
