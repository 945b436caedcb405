package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-slate/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Page writes
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		existing string
	}{
		{name: "new file", content: "<html></html>"},
		{name: "empty content", content: ""},
		{name: "replaces existing file", content: "new", existing: "old content that is longer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "index.html")
			if tt.existing != "" {
				if err := os.WriteFile(path, []byte(tt.existing), 0o644); err != nil {
					t.Fatalf("failed to write existing file: %v", err)
				}
			}

			if err := fileutil.WriteFileAtomic(path, tt.content, 0o644); err != nil {
				t.Fatalf("WriteFileAtomic() error = %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read written file: %v", err)
			}
			if string(data) != tt.content {
				t.Errorf("file content = %q, want %q", string(data), tt.content)
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatalf("failed to read dir: %v", err)
			}
			if len(entries) != 1 {
				t.Errorf("dir has %d entries, want 1 (temp file left behind?)", len(entries))
			}
		})
	}
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "index.html")
	if err := fileutil.WriteFileAtomic(path, "x", 0o644); err == nil {
		t.Error("WriteFileAtomic() into a missing directory should fail")
	}
}

// ---------------------------------------------------------------------------
// TestFileExists - File detection
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("content"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	testDir := filepath.Join(tempDir, "testdir")
	if err := os.Mkdir(testDir, 0o755); err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "existing file returns true", path: testFile, want: true},
		{name: "directory returns false", path: testDir, want: false},
		{name: "nonexistent path returns false", path: filepath.Join(tempDir, "nonexistent"), want: false},
		{name: "empty path returns false", path: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - Layout name or path
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "slate", want: false},
		{input: "dark-mode", want: false},
		{input: "layout.html", want: false},
		{input: "", want: false},
		{input: "./layout.html", want: true},
		{input: "../shared/layout.html", want: true},
		{input: "/absolute/layout.html", want: true},
		{input: "C:\\docs\\layout.html", want: true},
		{input: "sub/dir", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestOutputName - Page naming
// ---------------------------------------------------------------------------

func TestOutputName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		docPath  string
		override string
		want     string
	}{
		{
			name:    "strips md extension",
			docPath: filepath.Join("docs", "index.html.md"),
			want:    filepath.Join("docs", "index.html"),
		},
		{
			name:    "no extension to strip",
			docPath: filepath.Join("docs", "README"),
			want:    filepath.Join("docs", "README"),
		},
		{
			name:     "override in same directory",
			docPath:  filepath.Join("docs", "index.html.md"),
			override: "api.html",
			want:     filepath.Join("docs", "api.html"),
		},
		{
			name:    "md inside the name is kept",
			docPath: filepath.Join("docs", "cmd.mdx.md"),
			want:    filepath.Join("docs", "cmd.mdx"),
		},
		{
			name:     "bare file name with override",
			docPath:  "index.md",
			override: "out.html",
			want:     "out.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.OutputName(tt.docPath, tt.override); got != tt.want {
				t.Errorf("OutputName(%q, %q) = %q, want %q", tt.docPath, tt.override, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIncludePath / TestIsIncludeFragment - Include layout on disk
// ---------------------------------------------------------------------------

func TestIncludePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir  string
		want string
	}{
		{dir: "", want: filepath.Join("source", "includes", "_errors.md")},
		{dir: "partials", want: filepath.Join("source", "partials", "_errors.md")},
	}

	for _, tt := range tests {
		got := fileutil.IncludePath(filepath.Join("source", "index.html.md"), tt.dir, "errors")
		if got != tt.want {
			t.Errorf("IncludePath(dir %q) = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestIsIncludeFragment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{path: filepath.Join("source", "includes", "_errors.md"), want: true},
		{path: filepath.Join("includes", "_errors.md"), want: true},
		{path: filepath.Join("source", "includes", "errors.md"), want: false},
		{path: filepath.Join("source", "_errors.md"), want: false},
		{path: filepath.Join("source", "includes", "_errors.txt"), want: false},
		{path: filepath.Join("source", "index.html.md"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsIncludeFragment(tt.path, ""); got != tt.want {
				t.Errorf("IsIncludeFragment(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{path: "index.html.md", want: true},
		{path: "README.MD", want: true},
		{path: "index.html", want: false},
		{path: "md", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsMarkdown(tt.path); got != tt.want {
				t.Errorf("IsMarkdown(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
