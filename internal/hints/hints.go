// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"
)

// IsInCI detects common continuous-integration environments.
var IsInCI = func() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForDocumentNotFound returns hints for a missing requirements document.
func ForDocumentNotFound(path string) string {
	if filepath.Base(path) == path {
		return format("run from the directory holding " + path + " or pass its path as argument")
	}
	return format("check the path, or set input.defaultFile in the config")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and `pegs init`, pointing at the user config directory
// when it was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml or run 'pegs init'"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-pegs/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForInvalidDialect returns hints for a rejected dialect configuration.
func ForInvalidDialect() string {
	return format("section names are upper-case words (e.g. PROJECT); 'pegs init' writes the default dialect")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a .css path")
}

// ForLintFailure returns hints shown after a failed lint run.
// In CI, machine-readable output is suggested.
func ForLintFailure() string {
	if IsInCI() {
		return format("use --format json for machine-readable results")
	}
	return ""
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
