// Package assets provides the CSS styles and page templates used by the
// HTML and PDF renditions.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - go:embed defaults compiled into the binary
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// Built-in styles:
//   - default: compact print style (Arial, blue rules under headings)
//   - guide:   wide reading style with a dark code theme, header and footer
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}/
//	        └── page.html
//
// page.html is an html/template executed with pipeline.PageData.
//
// # Security
//
// Asset names are validated against path separators and dots, and the
// filesystem loader verifies resolved paths stay within the base path.
package assets
