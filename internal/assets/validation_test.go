package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple", input: "guide", wantErr: nil},
		{name: "hyphen", input: "my-style", wantErr: nil},
		{name: "underscore and digits", input: "style_2", wantErr: nil},
		{name: "empty", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "a/b", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: `a\b`, wantErr: ErrInvalidAssetName},
		{name: "traversal", input: "..", wantErr: ErrInvalidAssetName},
		{name: "extension", input: "guide.css", wantErr: ErrInvalidAssetName},
		{name: "null byte", input: "a\x00b", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
