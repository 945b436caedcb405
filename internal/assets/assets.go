package assets

// DefaultLayoutName is the name of the built-in Slate layout.
const DefaultLayoutName = "slate"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// Names lists the built-in layouts.
func Names() []string {
	return defaultLoader.Names()
}
