// SPDX-License-Identifier: AGPL-3.0-or-later

// Package discovery resolves which docspec files are relevant to a change
// set and maps docspecs to their companion markdown documents.
//
// Naming convention: README.docspec.md describes README.md; every docspec
// file ends in ".docspec.md" and lives next to its target.
package discovery

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DocspecSuffix is the filename suffix identifying docspec instance files.
const DocspecSuffix = ".docspec.md"

// DefaultMaxCandidates caps how many docspecs one discovery pass returns.
const DefaultMaxCandidates = 10

// IsDocspec reports whether path names a docspec file.
func IsDocspec(p string) bool {
	return strings.HasSuffix(p, DocspecSuffix)
}

// TargetMarkdown maps a docspec path to its companion markdown path
// (README.docspec.md -> README.md). It returns "" for non-docspec paths.
func TargetMarkdown(docspecPath string) string {
	if !IsDocspec(docspecPath) {
		return ""
	}
	return strings.TrimSuffix(docspecPath, DocspecSuffix) + ".md"
}

// DocspecFor maps a markdown path to its docspec path
// (README.md -> README.docspec.md). Docspec paths map to themselves.
func DocspecFor(mdPath string) string {
	if IsDocspec(mdPath) {
		return mdPath
	}
	ext := filepath.Ext(mdPath)
	return strings.TrimSuffix(mdPath, ext) + DocspecSuffix
}

// FindCandidates returns the docspec files relevant to a set of changed
// files, as repo-relative slash paths. Directly-changed docspecs come first;
// then, for each changed file, every directory from the file's own up to the
// repo root is searched for docspec files. The result is de-duplicated
// preserving order and capped at limit (DefaultMaxCandidates when limit <= 0).
//
// tracked is the full repo file list (typically scanner.TrackedFiles), so no
// filesystem access happens here.
func FindCandidates(tracked, changed []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxCandidates
	}

	trackedSet := make(map[string]bool, len(tracked))
	for _, f := range tracked {
		trackedSet[f] = true
	}

	var candidates []string
	// Directly changed docspecs first.
	for _, f := range changed {
		if IsDocspec(f) && trackedSet[f] {
			candidates = append(candidates, f)
		}
	}

	// Then walk each changed file's directory chain toward the root.
	for _, f := range changed {
		if !trackedSet[f] {
			continue
		}
		dir := path.Dir(f)
		for {
			candidates = append(candidates, docspecsIn(tracked, dir)...)
			if dir == "." || dir == "/" {
				break
			}
			dir = path.Dir(dir)
		}
	}

	seen := make(map[string]bool, len(candidates))
	var uniq []string
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		uniq = append(uniq, c)
	}

	if len(uniq) > limit {
		uniq = uniq[:limit]
	}
	return uniq
}

// docspecsIn returns the docspec files directly inside dir, sorted so a
// directory's candidates come out in a deterministic order.
func docspecsIn(tracked []string, dir string) []string {
	pattern := "*" + DocspecSuffix
	if dir != "." {
		pattern = dir + "/*" + DocspecSuffix
	}

	var found []string
	for _, f := range tracked {
		if ok, err := doublestar.Match(pattern, f); err == nil && ok {
			found = append(found, f)
		}
	}
	sort.Strings(found)
	return found
}
