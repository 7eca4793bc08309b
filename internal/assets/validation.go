package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName rejects names that are empty or could address a file
// other than {name}.css or {name}/page.html.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, "/\\.\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
