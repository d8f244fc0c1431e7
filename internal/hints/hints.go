// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-pubsection/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// inCI reports whether a common CI provider variable is set.
func inCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForMarkersNotFound returns hints for a target document without a marked region.
func ForMarkersNotFound(start, end string) string {
	return format("add " + start + " and " + end + " around the section, or set --start-marker/--end-marker")
}

// ForDuplicateMarkers returns hints for a document with several marked regions.
func ForDuplicateMarkers() string {
	return format("keep one marked region, or pass --allow-duplicate-markers to patch only the first")
}

// ForDataNotFound returns hints for a missing data file.
func ForDataNotFound() string {
	return format("use --data or set PUBSECTION_DATA; relative paths are resolved against --root")
}

// ForSchema returns hints for data files that fail validation.
func ForSchema() string {
	return format("every entry needs id, page_url, date, venue_html, title, summary, image, authors and buttons")
}

// ForOutOfDate returns hints for a failed check.
// In CI the fix happens elsewhere, so the hint says where.
func ForOutOfDate() string {
	if inCI() {
		return format("run 'pubsection update' locally and commit the result")
	}
	return format("run 'pubsection update'")
}

// ForWriteDocument returns hints for target documents that cannot be replaced.
func ForWriteDocument() string {
	hints := []string{"check the target directory is writable"}
	if IsInContainer() {
		hints = append(hints, "the site checkout may be mounted read-only")
	}
	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path to suggest
	marker := string(filepath.Separator) + "pubsection" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
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
