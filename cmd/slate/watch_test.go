package main

// Notes:
// - watchLoop: driven through fake channels so no filesystem events are needed.
// - runWatch: not tested; it only wires fsnotify into watchLoop.

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-slate/internal/config"
)

// ---------------------------------------------------------------------------
// TestWatchLoop - Debounced rebuilds
// ---------------------------------------------------------------------------

// startLoop runs watchLoop in the background and returns its event channel,
// error channel, rebuild counter and a function waiting for it to return.
func startLoop(t *testing.T, ctx context.Context, debounce time.Duration) (chan fsnotify.Event, chan error, *atomic.Int32, func() error) {
	t.Helper()

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	var rebuilds atomic.Int32
	done := make(chan error, 1)

	opts := watchOptions{
		debounce: debounce,
		relevant: func(path string) bool { return filepath.Ext(path) == ".md" },
		rebuild:  func(context.Context) { rebuilds.Add(1) },
		logger:   slog.New(slog.DiscardHandler),
	}
	go func() { done <- watchLoop(ctx, events, errs, opts) }()

	wait := func() error {
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("watchLoop did not return")
			return nil
		}
	}
	return events, errs, &rebuilds, wait
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWatchLoop_CoalescesBurst(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	events, _, rebuilds, wait := startLoop(t, ctx, 50*time.Millisecond)

	for range 5 {
		events <- fsnotify.Event{Name: "index.html.md", Op: fsnotify.Write}
	}
	eventually(t, func() bool { return rebuilds.Load() == 1 })

	// Quiet period passed: no second rebuild for the same burst
	time.Sleep(150 * time.Millisecond)
	if got := rebuilds.Load(); got != 1 {
		t.Errorf("rebuilds = %d, want 1", got)
	}

	cancel()
	if err := wait(); err != nil {
		t.Errorf("watchLoop() = %v, want nil", err)
	}
}

func TestWatchLoop_IgnoresIrrelevantEvents(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	events, errs, rebuilds, wait := startLoop(t, ctx, 20*time.Millisecond)

	events <- fsnotify.Event{Name: "index.html", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "index.html.md", Op: fsnotify.Chmod}
	errs <- os.ErrPermission

	time.Sleep(100 * time.Millisecond)
	if got := rebuilds.Load(); got != 0 {
		t.Errorf("rebuilds = %d, want 0", got)
	}

	cancel()
	_ = wait()
}

func TestWatchLoop_StopsWhenChannelCloses(t *testing.T) {
	t.Parallel()

	events, _, _, wait := startLoop(t, context.Background(), time.Second)
	close(events)

	if err := wait(); err != nil {
		t.Errorf("watchLoop() = %v, want nil", err)
	}
}

func TestWatchLoop_LogsErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = watchLoop(ctx, events, errs, watchOptions{
			relevant: func(string) bool { return true },
			rebuild:  func(context.Context) {},
			logger:   slog.New(slog.NewTextHandler(&buf, nil)),
		})
	}()

	errs <- os.ErrPermission
	cancel()
	<-done

	if !bytes.Contains(buf.Bytes(), []byte("watch error")) {
		t.Errorf("log = %q, want watch error", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestWatchPaths - Watched directories
// ---------------------------------------------------------------------------

func TestWatchPaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.html.md"), "x")
	writeFile(t, filepath.Join(root, "includes", "_errors.md"), "x")
	writeFile(t, filepath.Join(root, "v2", "index.html.md"), "x")
	layouts := filepath.Join(root, "theme", "layouts")
	writeFile(t, filepath.Join(layouts, "slate.html"), "x")

	t.Run("directory input walks tree", func(t *testing.T) {
		t.Parallel()

		got := watchPaths(root, config.DefaultConfig())
		for _, want := range []string{root, filepath.Join(root, "includes"), filepath.Join(root, "v2")} {
			if !slices.Contains(got, want) {
				t.Errorf("watchPaths() = %v, want to contain %s", got, want)
			}
		}
	})

	t.Run("file input watches doc and includes dirs", func(t *testing.T) {
		t.Parallel()

		got := watchPaths(filepath.Join(root, "index.html.md"), config.DefaultConfig())
		want := []string{root, filepath.Join(root, "includes")}
		if !slices.Equal(got, want) {
			t.Errorf("watchPaths() = %v, want %v", got, want)
		}
	})

	t.Run("layout dir added, missing dirs skipped", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Includes.Dir = "nope"
		cfg.Template.AssetPath = filepath.Join(root, "theme")

		got := watchPaths(filepath.Join(root, "v2", "index.html.md"), cfg)
		want := []string{filepath.Join(root, "v2"), layouts}
		if !slices.Equal(got, want) {
			t.Errorf("watchPaths() = %v, want %v", got, want)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRelevantChange / TestLayoutPath - Event filtering
// ---------------------------------------------------------------------------

func TestRelevantChange(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Template.Name = "./theme/page.html"
	relevant := relevantChange(cfg)

	tests := []struct {
		path string
		want bool
	}{
		{"docs/index.html.md", true},
		{"docs/includes/_errors.md", true},
		{"theme/page.html", true},
		{"docs/index.html", false},
		{"theme/other.html", false},
		{"docs/logo.png", false},
	}

	for _, tt := range tests {
		if got := relevant(filepath.FromSlash(tt.path)); got != tt.want {
			t.Errorf("relevant(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLayoutPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		template  string
		assetPath string
		want      string
	}{
		{"embedded default", "", "", ""},
		{"embedded named", "slate", "", ""},
		{"explicit path", "./page.html", "", "./page.html"},
		{"html suffix", "page.html", "", "page.html"},
		{"asset path default", "", "/theme", filepath.Join("/theme", "layouts", "slate.html")},
		{"asset path named", "dark", "/theme", filepath.Join("/theme", "layouts", "dark.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.Template.Name = tt.template
			cfg.Template.AssetPath = tt.assetPath
			if got := layoutPath(cfg); got != tt.want {
				t.Errorf("layoutPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
