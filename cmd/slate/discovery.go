package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/alnah/go-slate/internal/fileutil"
)

// MaxWorkers bounds --workers; compiles are CPU bound.
const MaxWorkers = 32

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension      = errors.New("document must have the .md extension")
	ErrInvalidWorkerCount    = errors.New("invalid worker count")
	ErrFilenameWithDirectory = errors.New("--filename requires a single document")
	ErrNoDocuments           = errors.New("no markdown documents found")
)

// FileToBuild represents a single document to compile.
type FileToBuild struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds the documents to compile under inputPath.
// Include fragments (<includesDir>/_name.md) are never documents.
func discoverFiles(inputPath, outputDir, filename, includesDir string) ([]FileToBuild, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "", filename)
		return []FileToBuild{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	if filename != "" {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFilenameWithDirectory, inputPath)
	}

	var files []FileToBuild
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) || fileutil.IsIncludeFragment(path, includesDir) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath, "")
		files = append(files, FileToBuild{InputPath: path, OutputPath: outPath})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, inputPath)
	}
	return files, nil
}

// resolveOutputPath determines the page path for a document.
// Without outputDir the page lands next to the document; with it, the
// document's directory relative to baseInputDir is kept under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir, filename string) string {
	page := fileutil.OutputName(inputPath, filename)
	if outputDir == "" {
		return page
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), filepath.Base(page))
		}
	}

	return filepath.Join(outputDir, filepath.Base(page))
}

// validateMarkdownExtension checks that the file has the .md extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}

// resolveWorkers returns the number of parallel builds.
func resolveWorkers(flagWorkers, files int) int {
	n := flagWorkers
	if n <= 0 {
		// GOMAXPROCS is adjusted by automaxprocs for containers
		n = min(runtime.GOMAXPROCS(0), 8)
	}
	return max(1, min(n, files))
}
