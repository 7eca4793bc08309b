package transliterate

import "fmt"

// Kind identifies the block construct a Directive maps to.
type Kind int

// Directive kinds. Heading kinds are contiguous so that HeadingLevel can be
// derived arithmetically.
const (
	Heading1 Kind = iota + 1
	Heading2
	Heading3
	Heading4
	BulletItem
	NumberedItem
	Paragraph
)

var kindNames = map[Kind]string{
	Heading1:     "Heading1",
	Heading2:     "Heading2",
	Heading3:     "Heading3",
	Heading4:     "Heading4",
	BulletItem:   "BulletItem",
	NumberedItem: "NumberedItem",
	Paragraph:    "Paragraph",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsHeading reports whether k is one of Heading1..Heading4.
func (k Kind) IsHeading() bool {
	return k >= Heading1 && k <= Heading4
}

// HeadingLevel returns 1..4 for heading kinds and 0 otherwise.
func (k Kind) HeadingLevel() int {
	if !k.IsHeading() {
		return 0
	}
	return int(k-Heading1) + 1
}

// Directive is one translated block of the source document.
type Directive struct {
	Kind Kind
	Text string // line content with its marker stripped
}

func (d Directive) String() string {
	return fmt.Sprintf("%s(%q)", d.Kind, d.Text)
}
