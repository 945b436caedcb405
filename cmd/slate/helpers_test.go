package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// testLayout renders the title and content only, so page assertions stay short.
const testLayout = `<title>{{.title}}</title><main>{{.content}}</main>`

// newTestEnv returns an Environment with captured output and no SLATE_* variables.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:     func() time.Time { return time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC) },
		Stdout:  stdout,
		Stderr:  stderr,
		Getenv:  func(string) string { return "" },
		Environ: func() []string { return nil },
	}
	return env, stdout, stderr
}

// withEnvVars makes env report vars, given as "KEY=value".
func withEnvVars(env *Environment, vars ...string) {
	values := make(map[string]string, len(vars))
	for _, kv := range vars {
		k, v, _ := strings.Cut(kv, "=")
		values[k] = v
	}
	env.Getenv = func(k string) string { return values[k] }
	env.Environ = func() []string { return vars }
}

// writeFile creates path with its parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// testDoc returns a document with a title, optional includes and body.
func testDoc(title, body string, includes ...string) string {
	var b strings.Builder
	b.WriteString("---\ntitle: " + title + "\n")
	if len(includes) > 0 {
		b.WriteString("includes:\n")
		for _, name := range includes {
			b.WriteString("  - " + name + "\n")
		}
	}
	b.WriteString("---\n\n" + body)
	return b.String()
}

// writeLayout writes testLayout into dir and returns its path.
func writeLayout(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "layout.html")
	writeFile(t, path, testLayout)
	return path
}
