// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-slate/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForMissingPageSettings returns a hint for documents without page settings.
func ForMissingPageSettings() string {
	return format("start the document with a '---' line, the page settings, then another '---' line")
}

// ForIncludeNotFound returns a hint for an include file that could not be opened.
func ForIncludeNotFound(path string) string {
	if path == "" {
		return format("remove the name from includes or create the file")
	}
	return format("create " + path + " or remove the name from includes")
}

// ForStrictIncludes returns a hint for builds aborted by a failed include.
func ForStrictIncludes() string {
	return format("drop --strict-includes to build with the failed include left empty")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-slate/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-slate") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForLayoutNotFound returns hints for layout not found errors.
func ForLayoutNotFound(available []string) string {
	if len(available) == 0 {
		return format("pass a path to an .html layout with --template")
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a path to an .html layout")
}

// ForStyleNotFound returns hints for unknown highlight styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForWatch returns hints for file watcher failures.
// Containers often miss events on bind mounts; Linux caps inotify watches.
func ForWatch() string {
	var hints []string

	if IsInContainer() {
		hints = append(hints, "file events may not cross bind mounts, run build instead")
	}
	if runtime.GOOS == "linux" && os.Getenv("CI") == "" {
		hints = append(hints, "raise fs.inotify.max_user_watches if the limit is reached")
	}

	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
