package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// rewritableAttrs lists, per element, the attribute holding a local path.
var rewritableAttrs = map[string]string{
	"img": "src",
	"a":   "href",
}

// RewriteRelativePaths turns relative img[src] and a[href] values of a full
// HTML document into absolute file:// URLs rooted at sourceDir. External
// engines render from a temp file, so relative references would otherwise
// resolve against the temp directory.
//
// Left untouched: URLs, anchors, absolute paths and any path that escapes
// sourceDir. An empty sourceDir returns the input unchanged.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	baseDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		attr, ok := rewritableAttrs[n.Data]
		if !ok {
			return
		}
		for i := range n.Attr {
			if n.Attr[i].Key != attr {
				continue
			}
			if rewritten, ok := toFileURL(n.Attr[i].Val, baseDir); ok {
				n.Attr[i].Val = rewritten
			}
		}
	})

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// walk visits n and its descendants depth-first.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// toFileURL resolves ref against baseDir. ok is false when ref must be kept.
func toFileURL(ref, baseDir string) (string, bool) {
	if !isLocalRelative(ref) {
		return "", false
	}

	abs := filepath.Clean(filepath.Join(baseDir, ref))
	prefix := filepath.Clean(baseDir) + string(filepath.Separator)
	if !strings.HasPrefix(abs+string(filepath.Separator), prefix) {
		return "", false
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), true
}

// isLocalRelative reports whether ref is a relative filesystem path.
func isLocalRelative(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return false
	}
	return !filepath.IsAbs(ref)
}
