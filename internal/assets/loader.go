package assets

// AssetLoader loads styles and template sets by name.
type AssetLoader interface {
	// LoadStyle returns the CSS for name (without .css).
	// Returns ErrStyleNotFound or ErrInvalidAssetName.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet returns the templates stored under name.
	// Returns ErrTemplateSetNotFound, ErrIncompleteTemplateSet or
	// ErrInvalidAssetName.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
