package main

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseBuildFlags - Build flag parsing
// ---------------------------------------------------------------------------

func TestParseBuildFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"-c", "docs", "-v",
		"-o", "out", "-f", "api.html", "-w", "4", "-s", "dracula",
		"-t", "./page.html", "--asset-path", "/theme",
		"--includes-dir", "partials", "--strict-includes", "--include-timeout", "2s",
		"--watch", "--debounce", "500ms",
		"source/index.html.md",
	}

	var usage bytes.Buffer
	f, positional, err := parseBuildFlags(args, &usage)
	if err != nil {
		t.Fatalf("parseBuildFlags() error = %v", err)
	}

	want := buildFlags{
		common:   commonFlags{config: "docs", verbose: true},
		output:   "out",
		filename: "api.html",
		workers:  4,
		style:    "dracula",
		template: templateFlags{name: "./page.html", assetPath: "/theme"},
		includes: includeFlags{dir: "partials", strict: true, timeout: "2s"},
		watch:    watchFlags{enabled: true, debounce: "500ms"},
	}
	if *f != want {
		t.Errorf("parseBuildFlags() = %+v, want %+v", *f, want)
	}
	if !slices.Equal(positional, []string{"source/index.html.md"}) {
		t.Errorf("positional = %v, want [source/index.html.md]", positional)
	}
}

func TestParseBuildFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantHelp bool
	}{
		{"unknown flag", []string{"--page-size", "a4"}, false},
		{"bad int", []string{"-w", "many"}, false},
		{"help", []string{"--help"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var usage bytes.Buffer
			_, _, err := parseBuildFlags(tt.args, &usage)
			if err == nil {
				t.Fatal("parseBuildFlags() error = nil, want error")
			}
			if got := errors.Is(err, flag.ErrHelp); got != tt.wantHelp {
				t.Errorf("errors.Is(err, ErrHelp) = %v, want %v", got, tt.wantHelp)
			}
			if tt.wantHelp && !bytes.Contains(usage.Bytes(), []byte("Usage: slate build")) {
				t.Errorf("usage = %q, want build usage", usage.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseCSSFlags - CSS flag parsing
// ---------------------------------------------------------------------------

func TestParseCSSFlags(t *testing.T) {
	t.Parallel()

	var usage bytes.Buffer
	f, err := parseCSSFlags([]string{"-s", "github", "-o", "style.css", "--list"}, &usage)
	if err != nil {
		t.Fatalf("parseCSSFlags() error = %v", err)
	}
	want := cssFlags{style: "github", output: "style.css", list: true}
	if *f != want {
		t.Errorf("parseCSSFlags() = %+v, want %+v", *f, want)
	}
}
