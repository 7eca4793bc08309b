package pipeline

// Notes:
// - InjectCSS: insertion point priority (</head>, <body>, prepend) and
//   sanitizing of "</" sequences
// - PageTemplate: defaults, header/footer toggling, escaping of metadata
//   while the Goldmark body passes through as trusted HTML

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"
)

const testPageTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head><title>{{.Title}}</title></head>
<body>
{{- with .Header}}<div class="header"><h1>{{.Title}}</h1>{{with .Subtitle}}<h2>{{.}}</h2>{{end}}{{with .Description}}<p>{{.}}</p>{{end}}</div>{{end}}
{{.Body}}
{{- if .Footer}}<div class="footer">{{range .Footer}}<p>{{.}}</p>{{end}}</div>{{end}}
</body>
</html>`

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "no escape needed", input: "body { color: red; }", want: "body { color: red; }"},
		{name: "style close", input: "</style>", want: `<\/style>`},
		{name: "multiple", input: "</a></b>", want: `<\/a><\/b>`},
		{name: "uppercase", input: "</STYLE>", want: `<\/STYLE>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCSS(tt.input); got != tt.want {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	injector := &CSSInjection{}
	css := "h1 { color: #2c3e50; }"

	tests := []struct {
		name      string
		html      string
		css       string
		wantIndex func(out string) bool
	}{
		{
			name: "before closing head",
			html: "<html><head><title>x</title></head><body></body></html>",
			css:  css,
			wantIndex: func(out string) bool {
				return strings.Index(out, "<style>") < strings.Index(out, "</head>")
			},
		},
		{
			name: "uppercase head",
			html: "<HTML><HEAD></HEAD><BODY></BODY></HTML>",
			css:  css,
			wantIndex: func(out string) bool {
				return strings.Index(out, "<style>") < strings.Index(out, "</HEAD>")
			},
		},
		{
			name: "after body when no head",
			html: `<body class="doc"><p>x</p></body>`,
			css:  css,
			wantIndex: func(out string) bool {
				return strings.HasPrefix(out, `<body class="doc"><style>`)
			},
		},
		{
			name: "prepend for bare fragment",
			html: "<p>x</p>",
			css:  css,
			wantIndex: func(out string) bool {
				return strings.HasPrefix(out, "<style>")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := injector.InjectCSS(context.Background(), tt.html, tt.css)
			if !strings.Contains(out, tt.css) {
				t.Fatalf("InjectCSS() output missing CSS: %s", out)
			}
			if !tt.wantIndex(out) {
				t.Errorf("InjectCSS() placed style block wrongly: %s", out)
			}
		})
	}
}

func TestInjectCSS_NoOp(t *testing.T) {
	t.Parallel()

	injector := &CSSInjection{}
	html := "<html><head></head></html>"

	if got := injector.InjectCSS(context.Background(), html, ""); got != html {
		t.Errorf("InjectCSS() with empty CSS = %q, want unchanged", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := injector.InjectCSS(ctx, html, "p{}"); got != html {
		t.Errorf("InjectCSS() with canceled context = %q, want unchanged", got)
	}
}

func TestNewPageTemplate_InvalidTemplate(t *testing.T) {
	t.Parallel()

	_, err := NewPageTemplate("{{.Title")
	if !errors.Is(err, ErrPageTemplateParse) {
		t.Errorf("NewPageTemplate() error = %v, want ErrPageTemplateParse", err)
	}
}

func TestPageTemplate_Assemble(t *testing.T) {
	t.Parallel()

	pt, err := NewPageTemplate(testPageTemplate)
	if err != nil {
		t.Fatalf("NewPageTemplate() error = %v", err)
	}

	tests := []struct {
		name         string
		data         PageData
		wantContains []string
		wantExcludes []string
	}{
		{
			name: "defaults",
			data: PageData{Body: "<p>hi</p>"},
			wantContains: []string{
				`<html lang="en">`,
				"<title>Document</title>",
				"<p>hi</p>",
			},
			wantExcludes: []string{`class="header"`, `class="footer"`},
		},
		{
			name: "header and footer",
			data: PageData{
				Title: "QuickShop Deployment Guide",
				Header: &Banner{
					Title:       "QuickShop E-commerce Platform",
					Subtitle:    "Complete Deployment Guide",
					Description: "Deploying on Oracle Cloud Infrastructure",
				},
				Body:   "<h2>Intro</h2>",
				Footer: []string{"Version 1.0.0", "All rights reserved."},
			},
			wantContains: []string{
				"<title>QuickShop Deployment Guide</title>",
				"<h1>QuickShop E-commerce Platform</h1>",
				"<h2>Complete Deployment Guide</h2>",
				`<div class="footer"><p>Version 1.0.0</p><p>All rights reserved.</p></div>`,
			},
		},
		{
			name:         "empty header dropped",
			data:         PageData{Header: &Banner{}, Body: "x"},
			wantExcludes: []string{`class="header"`},
		},
		{
			name: "metadata escaped, body trusted",
			data: PageData{
				Title: "<script>alert(1)</script>",
				Body:  template.HTML("<em>kept</em>"),
			},
			wantContains: []string{"&lt;script&gt;", "<em>kept</em>"},
			wantExcludes: []string{"<script>alert(1)</script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := pt.Assemble(context.Background(), tt.data)
			if err != nil {
				t.Fatalf("Assemble() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Assemble() missing %q in:\n%s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("Assemble() should not contain %q in:\n%s", exclude, got)
				}
			}
		})
	}
}

func TestPageTemplate_Assemble_CanceledContext(t *testing.T) {
	t.Parallel()

	pt, err := NewPageTemplate(testPageTemplate)
	if err != nil {
		t.Fatalf("NewPageTemplate() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := pt.Assemble(ctx, PageData{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Assemble() error = %v, want context.Canceled", err)
	}
}

func TestPageTemplate_Assemble_RenderError(t *testing.T) {
	t.Parallel()

	pt, err := NewPageTemplate(`{{template "missing"}}`)
	if err != nil {
		t.Fatalf("NewPageTemplate() error = %v", err)
	}

	if _, err := pt.Assemble(context.Background(), PageData{}); !errors.Is(err, ErrPageTemplateRender) {
		t.Errorf("Assemble() error = %v, want ErrPageTemplateRender", err)
	}
}
