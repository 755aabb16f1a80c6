// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scanner answers "which files exist / changed" questions by asking
// git, so .gitignore is respected implicitly.
package scanner

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Scanner provides access to the repository's tracked and changed files.
type Scanner struct {
	repoRoot string

	mu           sync.Mutex
	trackedCache []string
}

// New creates a new Scanner for the given repository root.
func New(repoRoot string) *Scanner {
	return &Scanner{
		repoRoot: repoRoot,
	}
}

// TrackedFiles returns all files tracked by git, caching the result for the
// instance lifetime.
func (s *Scanner) TrackedFiles(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.trackedCache != nil {
		return s.trackedCache, nil
	}

	// git ls-files -z to avoid escaping issues
	cmd := exec.CommandContext(ctx, "git", "ls-files", "-z")
	cmd.Dir = s.repoRoot
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git ls-files failed: %w", err)
	}

	if len(out) == 0 {
		s.trackedCache = []string{}
		return s.trackedCache, nil
	}

	sOut := strings.TrimSuffix(string(out), "\x00")
	s.trackedCache = strings.Split(sOut, "\x00")
	return s.trackedCache, nil
}

// ChangedFiles returns the files changed between base and head using the
// three-dot diff (base...head), the form pull-request pipelines hand us.
// Results are not cached; each call asks git.
func (s *Scanner) ChangedFiles(ctx context.Context, base, head string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "--name-only", base+"..."+head)
	cmd.Dir = s.repoRoot
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff %s...%s failed: %w", base, head, err)
	}

	var files []string
	for _, line := range strings.Split(string(out), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// TrackedDocspecs returns tracked docspec files after applying the filter
// options (default include pattern plus directory excludes).
func (s *Scanner) TrackedDocspecs(ctx context.Context, opts FilterOptions) ([]string, error) {
	all, err := s.TrackedFiles(ctx)
	if err != nil {
		return nil, err
	}
	if len(opts.IncludePatterns) == 0 {
		opts.IncludePatterns = []string{DefaultDocspecPattern}
	}
	return FilterFiles(all, opts), nil
}
