package mdexport

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockEngine struct {
	name      string
	availErr  error
	renderErr error
	output    []byte
	panicMsg  string
	onRender  func()

	mu        sync.Mutex
	calls     int
	inputHTML string
	inputPage *PageSettings
	closed    bool
	closeErr  error
}

func (m *mockEngine) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}

func (m *mockEngine) Available(ctx context.Context) error {
	return m.availErr
}

func (m *mockEngine) Render(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, error) {
	m.mu.Lock()
	m.calls++
	m.inputHTML = htmlContent
	m.inputPage = page
	m.mu.Unlock()

	if m.onRender != nil {
		m.onRender()
	}
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	if m.renderErr != nil {
		return nil, m.renderErr
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("%PDF-1.4 mock"), nil
}

func (m *mockEngine) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return m.closeErr
}

func (m *mockEngine) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ PDFEngine = (*mockEngine)(nil)

// newTestConverter creates a Converter whose PDF chain uses the given engines.
func newTestConverter(t *testing.T, engines []PDFEngine, opts ...Option) *Converter {
	t.Helper()

	opts = append(opts, withEngines(engines...))
	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return conv
}

// docxBody extracts word/document.xml from a DOCX archive.
func docxBody(t *testing.T, data []byte) string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DOCX is not a zip archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening document.xml: %v", err)
		}
		defer rc.Close()
		body, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading document.xml: %v", err)
		}
		return string(body)
	}
	t.Fatal("word/document.xml not found in DOCX")
	return ""
}
