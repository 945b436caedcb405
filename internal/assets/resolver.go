package assets

import (
	"errors"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// A custom directory overrides individual layouts; anything it lacks comes
// from the embedded set.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded layouts are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadLayout loads a layout, trying the custom loader first if available.
func (r *AssetResolver) LoadLayout(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadLayout(name)
	}

	content, err := r.custom.LoadLayout(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !errors.Is(err, ErrLayoutNotFound) {
		return "", err
	}

	return r.embedded.LoadLayout(name)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
