package transliterate

import (
	"iter"
	"strings"
)

// fenceMarker opens and closes fenced code blocks.
const fenceMarker = "```"

// prefixRule maps a line marker to the directive kind it produces.
type prefixRule struct {
	marker string
	kind   Kind
}

// prefixRules is checked in order; the first match wins. Longer heading
// markers come first so "#### x" never reads as a level-1 heading.
var prefixRules = []prefixRule{
	{"#### ", Heading4},
	{"### ", Heading3},
	{"## ", Heading2},
	{"# ", Heading1},
	{"- ", BulletItem},
	{"1. ", NumberedItem},
}

// Classify applies the per-line rule to a single line.
// The boolean is false for lines that produce no directive: blank lines and
// fence delimiters.
func Classify(line string) (Directive, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Directive{}, false
	}
	if strings.HasPrefix(trimmed, fenceMarker) {
		return Directive{}, false
	}

	for _, rule := range prefixRules {
		if text, ok := strings.CutPrefix(trimmed, rule.marker); ok {
			return Directive{Kind: rule.kind, Text: text}, true
		}
	}

	return Directive{Kind: Paragraph, Text: trimmed}, true
}

// Transliterate returns the directives for text in source order.
// The sequence is lazy and can be ranged over any number of times; each
// iteration rescans the immutable input.
func Transliterate(text string) iter.Seq[Directive] {
	return func(yield func(Directive) bool) {
		rest := text
		for {
			line, tail, more := strings.Cut(rest, "\n")
			if d, ok := Classify(line); ok {
				if !yield(d) {
					return
				}
			}
			if !more {
				return
			}
			rest = tail
		}
	}
}

// Collect is Transliterate materialized into a slice.
func Collect(text string) []Directive {
	var out []Directive
	for d := range Transliterate(text) {
		out = append(out, d)
	}
	return out
}
