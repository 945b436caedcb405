package slate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-slate/internal/assets"
	"github.com/alnah/go-slate/internal/fileutil"
	"github.com/alnah/go-slate/internal/pipeline"
)

// DefaultLayout is the name of the built-in Slate page layout.
const DefaultLayout = assets.DefaultLayoutName

// LayoutLoader loads page layouts by name.
// Implementations may load from embedded assets, filesystem, a database, etc.
type LayoutLoader interface {
	// LoadLayout loads a layout by name (without .html extension).
	// Returns ErrLayoutNotFound if the layout doesn't exist.
	LoadLayout(name string) (string, error)
}

// NewLayoutLoader creates a LayoutLoader for the given base path.
// If basePath is empty, only the embedded layouts are available.
// If basePath is set, {basePath}/layouts/{name}.html takes precedence
// with fallback to the embedded layouts.
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewLayoutLoader(basePath string) (LayoutLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return &layoutLoader{resolver: resolver}, nil
}

// layoutLoader maps internal asset errors to the public sentinels.
type layoutLoader struct {
	resolver *assets.AssetResolver
}

func (l *layoutLoader) LoadLayout(name string) (string, error) {
	content, err := l.resolver.LoadLayout(name)
	if errors.Is(err, assets.ErrLayoutNotFound) {
		return "", fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
	}
	return content, err
}

// LoadLayout returns the layout source for nameOrPath.
// A value that looks like a path (contains a separator or ends in .html) is
// read from disk; anything else is a layout name resolved through loader.
// A nil loader uses the embedded layouts.
func LoadLayout(loader LayoutLoader, nameOrPath string) (string, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultLayout
	}

	if fileutil.IsFilePath(nameOrPath) || strings.HasSuffix(nameOrPath, ".html") {
		content, err := os.ReadFile(nameOrPath) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrLayoutNotFound, err)
		}
		return string(content), nil
	}

	if loader == nil {
		var err error
		if loader, err = NewLayoutLoader(""); err != nil {
			return "", err
		}
	}
	return loader.LoadLayout(nameOrPath)
}

// LayoutNames lists the embedded layouts.
func LayoutNames() []string {
	return assets.Names()
}

// WriteHighlightCSS writes the stylesheet for the classes emitted by the
// built-in highlighter, in the named chroma style.
func WriteHighlightCSS(w io.Writer, style string) error {
	if !pipeline.HasStyle(style) {
		return fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, style)
	}
	return pipeline.NewChromaHighlighter(style).WriteCSS(w)
}

// HighlightStyles lists the chroma styles accepted by WithHighlightStyle.
func HighlightStyles() []string {
	return pipeline.StyleNames()
}
