package main

import (
	"errors"
	"os"

	slate "github.com/alnah/go-slate"
	"github.com/alnah/go-slate/internal/config"
)

// Exit codes for the slate CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful build
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitDocument = 4 // Document could not be compiled
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Document errors (exit 4)
	if errors.Is(err, slate.ErrMissingPageSettings) ||
		errors.Is(err, slate.ErrIncludeLoad) ||
		errors.Is(err, slate.ErrTemplate) ||
		errors.Is(err, slate.ErrHTMLConversion) {
		return ExitDocument
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, slate.ErrEmptyTemplate) ||
		errors.Is(err, slate.ErrUnknownHighlightStyle) ||
		errors.Is(err, slate.ErrInvalidIncludePolicy) ||
		errors.Is(err, slate.ErrLayoutNotFound) ||
		errors.Is(err, slate.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrFilenameWithDirectory) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWritePage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoDocuments) {
		return ExitIO
	}

	return ExitGeneral
}
