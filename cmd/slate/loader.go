package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	slate "github.com/alnah/go-slate"
	"github.com/alnah/go-slate/internal/fileutil"
	"github.com/alnah/go-slate/internal/hints"
)

// ErrInvalidIncludeName is returned for include names that would leave the includes directory.
var ErrInvalidIncludeName = errors.New("invalid include name")

// includeLoader reads includes from <dir>/_<name>.md next to the document.
// The document ID passed by the compiler is the document's path.
type includeLoader struct {
	dir string
}

// Compile-time interface implementation check.
var _ slate.IncludeLoader = includeLoader{}

func (l includeLoader) Load(ctx context.Context, name, documentID string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", slate.Unrecoverable(fmt.Errorf("%w: %q", ErrInvalidIncludeName, name))
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := fileutil.IncludePath(documentID, l.dir, name)
	data, err := os.ReadFile(path) // #nosec G304 -- name cannot contain separators
	if err != nil {
		return "", fmt.Errorf("could not open include %s: %w%s", path, err, hints.ForIncludeNotFound(path))
	}
	return string(data), nil
}
