package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	slate "github.com/alnah/go-slate"
	"github.com/alnah/go-slate/internal/config"
	"github.com/alnah/go-slate/internal/fileutil"
	"github.com/alnah/go-slate/internal/hints"
)

// ErrWatch is returned when the file watcher cannot start.
var ErrWatch = errors.New("cannot watch for changes")

// defaultDebounce applies when the config leaves watch.debounce empty.
const defaultDebounce = 200 * time.Millisecond

// watchOptions configures a watch loop.
type watchOptions struct {
	paths    []string                  // directories to watch
	debounce time.Duration             // quiet period before a rebuild
	relevant func(path string) bool    // filters events by path
	rebuild  func(ctx context.Context) // runs after each quiet period
	logger   *slog.Logger
}

// runWatch rebuilds on changes until ctx is canceled.
func runWatch(ctx context.Context, opts watchOptions) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrWatch, err, hints.ForWatch())
	}
	defer w.Close()

	for _, p := range opts.paths {
		if err := w.Add(p); err != nil {
			return fmt.Errorf("%w: %s: %v%s", ErrWatch, p, err, hints.ForWatch())
		}
	}

	opts.logger.Info("watching for changes", slog.Any("paths", opts.paths))
	return watchLoop(ctx, w.Events, w.Errors, opts)
}

// watchLoop coalesces bursts of events into a single rebuild.
// Returns nil when ctx is canceled or the event channel closes.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, opts watchOptions) error {
	debounce := opts.debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	var changed []string
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod || !opts.relevant(ev.Name) {
				continue
			}
			if !slices.Contains(changed, ev.Name) {
				changed = append(changed, ev.Name)
			}
			timer.Reset(debounce)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			opts.logger.Warn("watch error", slog.Any("error", err))

		case <-timer.C:
			opts.logger.Info("rebuilding", slog.Any("changed", changed))
			changed = changed[:0]
			opts.rebuild(ctx)
		}
	}
}

// watchPaths lists the directories whose changes trigger a rebuild: the input
// directory tree (or the input file's directory and its includes) and the
// layout's directory. Missing directories are skipped.
func watchPaths(inputPath string, cfg *config.Config) []string {
	var dirs []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return
		}
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	if info, err := os.Stat(inputPath); err == nil && info.IsDir() {
		// fsnotify is not recursive
		_ = filepath.WalkDir(inputPath, func(path string, d os.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				add(path)
			}
			return nil
		})
	} else {
		docDir := filepath.Dir(inputPath)
		add(docDir)
		add(filepath.Join(docDir, cmp.Or(cfg.Includes.Dir, fileutil.IncludesDir)))
	}

	if layout := layoutPath(cfg); layout != "" {
		add(filepath.Dir(layout))
	}

	return dirs
}

// relevantChange reports whether a changed path affects the build:
// any markdown file, or the layout file. Written pages are never relevant.
func relevantChange(cfg *config.Config) func(string) bool {
	layout := layoutPath(cfg)
	return func(path string) bool {
		if fileutil.IsMarkdown(path) {
			return true
		}
		return layout != "" && filepath.Clean(path) == filepath.Clean(layout)
	}
}

// layoutPath returns the file the layout is read from, or "" for embedded layouts.
func layoutPath(cfg *config.Config) string {
	name := cfg.Template.Name
	if fileutil.IsFilePath(name) || strings.HasSuffix(name, ".html") {
		return name
	}
	if cfg.Template.AssetPath == "" {
		return ""
	}
	return filepath.Join(cfg.Template.AssetPath, "layouts", cmp.Or(name, slate.DefaultLayout)+".html")
}
