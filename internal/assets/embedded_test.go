package assets

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{name: "default style", styleName: DefaultStyleName, wantContain: "font-family: Arial"},
		{name: "guide style", styleName: "guide", wantContain: "tr:nth-child(even)"},
		{name: "unknown", styleName: "nonexistent", wantErr: ErrStyleNotFound},
		{name: "invalid name", styleName: "../default", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
			}
			if tt.wantContain != "" && !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) missing %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplateSet(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	ts, err := loader.LoadTemplateSet(DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet(default) error = %v", err)
	}
	if ts.Name != DefaultTemplateSetName {
		t.Errorf("Name = %q, want %q", ts.Name, DefaultTemplateSetName)
	}
	for _, want := range []string{"{{.Title}}", "{{.Body}}", `class="footer"`} {
		if !strings.Contains(ts.Page, want) {
			t.Errorf("default page template missing %q", want)
		}
	}

	if _, err := loader.LoadTemplateSet("nonexistent"); !errors.Is(err, ErrTemplateSetNotFound) {
		t.Errorf("LoadTemplateSet(nonexistent) error = %v, want ErrTemplateSetNotFound", err)
	}
	if _, err := loader.LoadTemplateSet("a/b"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadTemplateSet(a/b) error = %v, want ErrInvalidAssetName", err)
	}
}

func TestEmbeddedLoader_StyleNames(t *testing.T) {
	t.Parallel()

	names := NewEmbeddedLoader().StyleNames()
	for _, want := range []string{"default", "guide"} {
		if !slices.Contains(names, want) {
			t.Errorf("StyleNames() = %v, missing %q", names, want)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("StyleNames() = %v, want sorted", names)
	}
}
