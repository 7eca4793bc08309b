package yamlutil_test

// Notes:
// - TestInputSizeLimit mutates MaxInputSize and therefore does not run in
//   parallel with anything.
// - Library parse errors are only checked for the "yamlutil:" prefix; their
//   wording belongs to the YAML library.

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/alnah/go-mdexport/internal/yamlutil"
)

type settings struct {
	Title   string   `yaml:"title"`
	Formats []string `yaml:"formats"`
	Margin  float64  `yaml:"margin"`
}

// ---------------------------------------------------------------------------
// TestDecodeBytes - Decodes YAML into Go structs
// ---------------------------------------------------------------------------

func TestDecodeBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		data       string
		dest       any
		opts       []yamlutil.Option
		wantErr    error
		wantPrefix bool
	}{
		{name: "valid", data: "title: Guide\nformats: [pdf, docx]\nmargin: 0.75", dest: &settings{}},
		{name: "unknown key tolerated", data: "title: Guide\nextra: 1", dest: &settings{}},
		{name: "unknown key strict", data: "title: Guide\nextra: 1", dest: &settings{}, opts: []yamlutil.Option{yamlutil.Strict()}, wantPrefix: true},
		{name: "empty", data: "", dest: &settings{}, wantErr: yamlutil.ErrEmptyInput},
		{name: "nil destination", data: "title: x", dest: nil, wantErr: yamlutil.ErrNilDestination},
		{name: "syntax error", data: "formats: [pdf", dest: &settings{}, wantPrefix: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.DecodeBytes([]byte(tt.data), tt.dest, tt.opts...)

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeBytes() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantPrefix:
				if err == nil || !strings.HasPrefix(err.Error(), "yamlutil:") {
					t.Fatalf("DecodeBytes() error = %v, want yamlutil-prefixed error", err)
				}
			case err != nil:
				t.Fatalf("DecodeBytes() unexpected error: %v", err)
			}
		})
	}
}

func TestDecodeBytes_Values(t *testing.T) {
	t.Parallel()

	var got settings
	data := "title: Guide d'utilisation\nformats:\n  - pdf\n  - txt\nmargin: 1.5\n"
	if err := yamlutil.DecodeBytes([]byte(data), &got, yamlutil.Strict()); err != nil {
		t.Fatalf("DecodeBytes() unexpected error: %v", err)
	}

	if got.Title != "Guide d'utilisation" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.Formats) != 2 || got.Formats[0] != "pdf" || got.Formats[1] != "txt" {
		t.Errorf("Formats = %v, want [pdf txt]", got.Formats)
	}
	if got.Margin != 1.5 {
		t.Errorf("Margin = %v, want 1.5", got.Margin)
	}
}

// ---------------------------------------------------------------------------
// TestDecode - Reader front end
// ---------------------------------------------------------------------------

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("reads from reader", func(t *testing.T) {
		t.Parallel()

		var got settings
		if err := yamlutil.Decode(strings.NewReader("title: From reader"), &got); err != nil {
			t.Fatalf("Decode() unexpected error: %v", err)
		}
		if got.Title != "From reader" {
			t.Errorf("Title = %q, want %q", got.Title, "From reader")
		}
	})

	t.Run("reader error is wrapped", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("disk gone")
		err := yamlutil.Decode(iotest.ErrReader(boom), &settings{})
		if !errors.Is(err, boom) {
			t.Fatalf("Decode() error = %v, want %v", err, boom)
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()

		err := yamlutil.Decode(strings.NewReader("title: x"), nil)
		if !errors.Is(err, yamlutil.ErrNilDestination) {
			t.Fatalf("Decode() error = %v, want ErrNilDestination", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - MaxInputSize enforcement
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	original := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = original })
	yamlutil.MaxInputSize = 32

	big := "title: " + strings.Repeat("x", 64)

	if err := yamlutil.DecodeBytes([]byte(big), &settings{}); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("DecodeBytes() error = %v, want ErrInputTooLarge", err)
	}
	if err := yamlutil.Decode(strings.NewReader(big), &settings{}); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("Decode() error = %v, want ErrInputTooLarge", err)
	}
	if err := yamlutil.DecodeBytes([]byte("title: ok"), &settings{}); err != nil {
		t.Errorf("DecodeBytes() small input unexpected error: %v", err)
	}
}
