// Package fileutil provides file and path helpers shared by the CLI.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MarkdownExt is the extension of compilable documents.
const MarkdownExt = ".md"

// IncludesDir is the directory, next to a document, holding its include fragments.
const IncludesDir = "includes"

// WriteFileAtomic writes content to path through a temporary file in the same
// directory, so readers never observe a partially written page.
func WriteFileAtomic(path, content string, perm os.FileMode) (err error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmpFile.WriteString(content); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "slate" -> false (name)
//   - "./layout.html" -> true (relative path)
//   - "/absolute/layout.html" -> true (absolute)
//   - "C:\docs\layout.html" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// ChangeFile replaces the last element of path with name.
func ChangeFile(path, name string) string {
	return filepath.Join(filepath.Dir(path), name)
}

// OutputName returns the page path for a document: override in the document's
// directory when set, otherwise the document path without its ".md" extension.
//
//	OutputName("docs/index.html.md", "")     -> "docs/index.html"
//	OutputName("docs/index.html.md", "api.html") -> "docs/api.html"
func OutputName(docPath, override string) string {
	if override != "" {
		return ChangeFile(docPath, override)
	}
	return strings.TrimSuffix(docPath, MarkdownExt)
}

// IncludePath returns where the include name of the document at docPath lives:
// <dir>/_<name>.md next to the document. An empty dir means IncludesDir.
func IncludePath(docPath, dir, name string) string {
	if dir == "" {
		dir = IncludesDir
	}
	return filepath.Join(filepath.Dir(docPath), dir, "_"+name+MarkdownExt)
}

// IsIncludeFragment reports whether path is an include fragment
// (<dir>/_<name>.md) rather than a standalone document. An empty dir means IncludesDir.
func IsIncludeFragment(path, dir string) bool {
	if dir == "" {
		dir = IncludesDir
	}
	base := filepath.Base(path)
	parent := filepath.Base(filepath.Dir(path))
	return parent == filepath.Base(dir) && strings.HasPrefix(base, "_") && strings.HasSuffix(base, MarkdownExt)
}

// IsMarkdown reports whether path has the ".md" extension.
func IsMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), MarkdownExt)
}
