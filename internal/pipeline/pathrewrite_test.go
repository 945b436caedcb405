package pipeline

// Notes:
// - Tests RewriteRelativePaths through its public API only
// - Directories are absolute and OS-specific so filepath.Rel results are predictable
// - Path traversal tests verify the observable behavior (path not rewritten)

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func testDirs() (source, output string) {
	if runtime.GOOS == "windows" {
		return `C:\docs\source`, `C:\docs\dist`
	}
	return "/docs/source", "/docs/dist"
}

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	sourceDir, outputDir := testDirs()

	tests := []struct {
		name         string
		html         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative image with dot slash",
			html:         `<img src="./images/logo.png"/>`,
			wantContains: []string{`src="../source/images/logo.png"`},
		},
		{
			name:         "relative image without dot slash",
			html:         `<img src="images/logo.png"/>`,
			wantContains: []string{`src="../source/images/logo.png"`},
		},
		{
			name:         "relative link",
			html:         `<a href="guide.html">Guide</a>`,
			wantContains: []string{`href="../source/guide.html"`},
		},
		{
			name:         "absolute path unchanged",
			html:         `<img src="/abs/logo.png"/>`,
			wantContains: []string{`src="/abs/logo.png"`},
		},
		{
			name:         "http URL unchanged",
			html:         `<img src="https://example.com/logo.png"/>`,
			wantContains: []string{`src="https://example.com/logo.png"`},
		},
		{
			name:         "mailto unchanged",
			html:         `<a href="mailto:api@example.com">Mail</a>`,
			wantContains: []string{`href="mailto:api@example.com"`},
		},
		{
			name:         "anchor unchanged",
			html:         `<a href="#errors">Errors</a>`,
			wantContains: []string{`href="#errors"`},
		},
		{
			name:         "protocol-relative unchanged",
			html:         `<img src="//cdn.example.com/x.png"/>`,
			wantContains: []string{`src="//cdn.example.com/x.png"`},
		},
		{
			name:         "traversal outside source dir unchanged",
			html:         `<img src="../../etc/passwd"/>`,
			wantContains: []string{`src="../../etc/passwd"`},
		},
		{
			name:         "nested output dir",
			html:         `<p>See <a href="v2/index.html">v2</a></p>`,
			wantContains: []string{`href="../source/v2/index.html"`},
		},
		{
			name:         "script src untouched",
			html:         `<script src="app.js"></script>`,
			wantContains: []string{`src="app.js"`},
		},
		{
			name:         "highlighted code survives",
			html:         `<pre class="highlight json"><code><span class="p">{</span></code></pre>`,
			wantContains: []string{`<pre class="highlight json"><code><span class="p">{</span></code></pre>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.html, sourceDir, outputDir)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteRelativePaths() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("RewriteRelativePaths() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestRewriteRelativePaths_NoOp(t *testing.T) {
	t.Parallel()

	sourceDir, _ := testDirs()
	input := `<img src="images/logo.png">`

	tests := []struct {
		name      string
		sourceDir string
		outputDir string
	}{
		{name: "empty source dir", sourceDir: "", outputDir: sourceDir},
		{name: "empty output dir", sourceDir: sourceDir, outputDir: ""},
		{name: "same directory", sourceDir: sourceDir, outputDir: filepath.Join(sourceDir, ".")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(input, tt.sourceDir, tt.outputDir)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() unexpected error: %v", err)
			}
			if got != input {
				t.Errorf("RewriteRelativePaths() = %q, want unchanged %q", got, input)
			}
		})
	}
}

func TestRewriteRelativePaths_KeepsQueryAndFragment(t *testing.T) {
	t.Parallel()

	sourceDir, outputDir := testDirs()
	input := `<a href="guide.html#auth">Auth</a><video src="media/demo.mp4?v=2"></video>`

	got, err := RewriteRelativePaths(input, sourceDir, outputDir)
	if err != nil {
		t.Fatalf("RewriteRelativePaths() unexpected error: %v", err)
	}
	for _, want := range []string{`href="../source/guide.html#auth"`, `src="../source/media/demo.mp4?v=2"`} {
		if !strings.Contains(got, want) {
			t.Errorf("RewriteRelativePaths() = %q, want to contain %q", got, want)
		}
	}
}
