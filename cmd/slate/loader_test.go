package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	slate "github.com/alnah/go-slate"
)

// ---------------------------------------------------------------------------
// TestIncludeLoader - Filesystem include loading
// ---------------------------------------------------------------------------

func TestIncludeLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := filepath.Join(dir, "index.html.md")
	writeFile(t, filepath.Join(dir, "includes", "_errors.md"), "# Errors\n")
	writeFile(t, filepath.Join(dir, "partials", "_errors.md"), "# Partial errors\n")

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"default dir", "", "# Errors\n"},
		{"custom dir", "partials", "# Partial errors\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := includeLoader{dir: tt.dir}.Load(context.Background(), "errors", doc)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIncludeLoader_Missing(t *testing.T) {
	t.Parallel()

	doc := filepath.Join(t.TempDir(), "index.html.md")
	_, err := includeLoader{}.Load(context.Background(), "kittens", doc)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load() error = %v, want os.ErrNotExist", err)
	}
	if errors.Is(err, slate.ErrUnrecoverable) {
		t.Error("missing include should be recoverable")
	}
	if !strings.Contains(err.Error(), "_kittens.md") {
		t.Errorf("Load() error = %q, want the file path", err)
	}
}

func TestIncludeLoader_InvalidNames(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", ".", "..", "../secret", "a/b", `a\b`} {
		_, err := includeLoader{}.Load(context.Background(), name, "index.html.md")
		if !errors.Is(err, ErrInvalidIncludeName) {
			t.Errorf("Load(%q) error = %v, want ErrInvalidIncludeName", name, err)
		}
		if !errors.Is(err, slate.ErrUnrecoverable) {
			t.Errorf("Load(%q) error = %v, want unrecoverable", name, err)
		}
	}
}

func TestIncludeLoader_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := includeLoader{}.Load(ctx, "errors", "index.html.md")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}
