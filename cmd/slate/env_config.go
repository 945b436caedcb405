package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-slate/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // SLATE_CONFIG: config file name or path
	InputDir       string // SLATE_INPUT_DIR: default input directory
	OutputDir      string // SLATE_OUTPUT_DIR: default output directory
	Template       string // SLATE_TEMPLATE: layout name or path
	AssetPath      string // SLATE_ASSET_PATH: custom layout directory
	Style          string // SLATE_STYLE: highlight style
	IncludesPolicy string // SLATE_INCLUDES_POLICY: degrade or strict
	IncludeTimeout string // SLATE_INCLUDE_TIMEOUT: duration
	Workers        int    // SLATE_WORKERS: parallel builds
}

// knownEnvVars lists valid SLATE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SLATE_CONFIG":          true,
	"SLATE_INPUT_DIR":       true,
	"SLATE_OUTPUT_DIR":      true,
	"SLATE_TEMPLATE":        true,
	"SLATE_ASSET_PATH":      true,
	"SLATE_STYLE":           true,
	"SLATE_INCLUDES_POLICY": true,
	"SLATE_INCLUDE_TIMEOUT": true,
	"SLATE_WORKERS":         true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:     getenv("SLATE_CONFIG"),
		InputDir:       getenv("SLATE_INPUT_DIR"),
		OutputDir:      getenv("SLATE_OUTPUT_DIR"),
		Template:       getenv("SLATE_TEMPLATE"),
		AssetPath:      getenv("SLATE_ASSET_PATH"),
		Style:          getenv("SLATE_STYLE"),
		IncludesPolicy: getenv("SLATE_INCLUDES_POLICY"),
		IncludeTimeout: getenv("SLATE_INCLUDE_TIMEOUT"),
	}

	// Invalid worker counts are ignored, like an unset variable
	if workers := getenv("SLATE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized SLATE_* variables.
// Helps catch typos like SLATE_TEMPLTE instead of SLATE_TEMPLATE.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "SLATE_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Template != "" {
		cfg.Template.Name = env.Template
	}
	if env.AssetPath != "" {
		cfg.Template.AssetPath = env.AssetPath
	}
	if env.Style != "" {
		cfg.Highlight.Style = env.Style
	}
	if env.IncludesPolicy != "" {
		cfg.Includes.Policy = env.IncludesPolicy
	}
	if env.IncludeTimeout != "" {
		cfg.Includes.Timeout = env.IncludeTimeout
	}
}
