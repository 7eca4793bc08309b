package assets

// TemplateSet holds the templates for one page layout.
type TemplateSet struct {
	Name string // identifier (name or directory path)
	Page string // page.html content
}

// Built-in asset names.
const (
	DefaultStyleName       = "default"
	DefaultTemplateSetName = "default"
)

// pageTemplateFile is the required file in every template set directory.
const pageTemplateFile = "page.html"
