// Package transliterate turns Markdown text into an ordered sequence of
// block-level directives for the DOCX renderer.
//
// It is not a Markdown parser. Each input line is classified on its own by
// prefix matching:
//
//	"#### " "### " "## " "# "   -> Heading4 .. Heading1
//	"- "                        -> BulletItem
//	"1. "                       -> NumberedItem
//	"```"                       -> dropped
//	blank                       -> dropped
//	anything else               -> Paragraph
//
// Only fence delimiter lines are dropped. Lines between two fences are
// classified like any other line, so code shows up as plain paragraphs in
// the rich document.
package transliterate
