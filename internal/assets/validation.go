package assets

import (
	"fmt"
	"regexp"
)

// assetName accepts ASCII letters, digits, hyphens and underscores.
var assetName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAssetName checks that a layout name is safe to join into a path.
// Separators, dots and anything outside [A-Za-z0-9_-] are rejected.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if !assetName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
