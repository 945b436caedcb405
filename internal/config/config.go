package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-slate/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxFilenameLength = 255  // NAME_MAX on most filesystems
	MaxNameLength     = 100  // Layout and style names
)

// Config holds all configuration for page builds.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Template  TemplateConfig  `yaml:"template"`
	Includes  IncludesConfig  `yaml:"includes"`
	Highlight HighlightConfig `yaml:"highlight"`
	Watch     WatchConfig     `yaml:"watch"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Filename   string `yaml:"filename"`   // Output file name override (single input only)
}

// TemplateConfig selects the page layout.
type TemplateConfig struct {
	Name      string `yaml:"name"`      // Layout name or path to an .html file (empty = slate)
	AssetPath string `yaml:"assetPath"` // Directory with layouts/ overriding the embedded ones
}

// IncludesConfig defines how includes are loaded.
type IncludesConfig struct {
	Dir     string `yaml:"dir"`     // Directory next to the document (default: includes)
	Policy  string `yaml:"policy"`  // "degrade" or "strict" (default: degrade)
	Timeout string `yaml:"timeout"` // Go duration bounding all includes of one document (empty = none)
}

// HighlightConfig defines syntax highlighting options.
type HighlightConfig struct {
	Style string `yaml:"style"` // Chroma style for the highlight stylesheet (default: monokai)
}

// WatchConfig defines watch mode options.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // Go duration between a change and the rebuild (default: 200ms)
}

// IncludeTimeout returns the parsed include timeout, or 0 when unset.
func (c *Config) IncludeTimeout() time.Duration {
	d, _ := parseDuration(c.Includes.Timeout)
	return d
}

// WatchDebounce returns the parsed watch debounce, or 0 when unset.
func (c *Config) WatchDebounce() time.Duration {
	d, _ := parseDuration(c.Watch.Debounce)
	return d
}

// Validate checks field lengths and value formats.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.filename", c.Output.Filename, MaxFilenameLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Output.Filename, "/\\") {
		return fmt.Errorf("%w: output.filename: %q must be a file name, not a path", ErrInvalidValue, c.Output.Filename)
	}
	if err := validateFieldLength("template.name", c.Template.Name, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("template.assetPath", c.Template.AssetPath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("includes.dir", c.Includes.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxNameLength); err != nil {
		return err
	}

	switch strings.ToLower(c.Includes.Policy) {
	case "", "degrade", "strict":
		// valid
	default:
		return fmt.Errorf("%w: includes.policy: %q (must be degrade or strict)", ErrInvalidValue, c.Includes.Policy)
	}

	if _, err := parseDuration(c.Includes.Timeout); err != nil {
		return fmt.Errorf("%w: includes.timeout: %v", ErrInvalidValue, err)
	}
	if _, err := parseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("%w: watch.debounce: %v", ErrInvalidValue, err)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// parseDuration parses an optional positive duration. Empty means 0.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", s)
	}
	return d, nil
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Template:  TemplateConfig{Name: "slate"},
		Includes:  IncludesConfig{Dir: "includes", Policy: "degrade"},
		Highlight: HighlightConfig{Style: "monokai"},
		Watch:     WatchConfig{Debounce: "200ms"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// current directory, then the user config directory (~/.config/go-slate/).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-slate", name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
