package scanner

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultDocspecPattern matches docspec instance files anywhere in the tree.
const DefaultDocspecPattern = "**/*.docspec.md"

// FilterOptions defines criteria for including or excluding files.
type FilterOptions struct {
	// ExcludeDirs is a list of directory names to exclude.
	// Matching is segment-aware: "vendor" excludes "vendor/foo" and
	// "pkg/vendor/bar", but not "vendor_stuff/foo".
	ExcludeDirs []string

	// IncludePatterns is a list of doublestar glob patterns, matched
	// against the slash-separated repo-relative path. If empty, all files
	// are included.
	IncludePatterns []string
}

// DefaultExcludeDirs returns the standard list of directories docspec skips.
func DefaultExcludeDirs() []string {
	return []string{
		"node_modules",
		".git",
		"dist",
		"build",
		"out",
		"vendor",
		"target",
		".idea",
		".docspec",
	}
}

// FilterFiles applies the filter options to a list of file paths.
// It returns a new slice of strings, sorted deterministically.
func FilterFiles(paths []string, opts FilterOptions) []string {
	if len(paths) == 0 {
		return nil
	}

	var filtered []string
	for _, path := range paths {
		if shouldExclude(path, opts.ExcludeDirs) {
			continue
		}
		if !matchesInclude(path, opts.IncludePatterns) {
			continue
		}
		filtered = append(filtered, path)
	}

	sort.Strings(filtered)
	return filtered
}

// shouldExclude returns true if the path contains any of the excluded segments.
func shouldExclude(path string, excludes []string) bool {
	if len(excludes) == 0 {
		return false
	}
	parts := strings.Split(path, "/")
	for _, part := range parts {
		for _, exclude := range excludes {
			if part == exclude {
				return true
			}
		}
	}
	return false
}

// matchesInclude returns true if patterns is empty or the path matches one
// of the glob patterns.
func matchesInclude(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}
